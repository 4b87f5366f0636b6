package utils

import (
	"io"

	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// CloseLogged closes c and reports the outcome under name.
// Use on shutdown paths where a failed close is worth a warning but not an abort.
func CloseLogged(c io.Closer, name string, log logger.Logger) bool {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("component", name), logger.Error(err))
		return false
	}
	log.Info("✅ closed cleanly", logger.String("component", name))
	return true
}
