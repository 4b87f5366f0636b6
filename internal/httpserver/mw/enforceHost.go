package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/utils"
)

// EnforceHost serves the API only under the configured Host names.
// Patterns are case-insensitive, ignore the port and accept a leading
// wildcard label ("*.example.com"). An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			patterns = append(patterns, h)
		}
	}
	if len(patterns) == 0 {
		log.Debug("host filter disabled")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("host filter enabled", logger.Strings("hosts", patterns))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(utils.ParseHostNoPort(r.Host))
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Info("request for unknown host rejected",
				logger.String("host", r.Host),
				logger.String("path", r.URL.Path))
			render.Fail(w, http.StatusForbidden, "host_not_allowed", "host not served here")
		})
	}
}

// matchHost reports whether host equals pattern or, for "*.suffix",
// is a strict subdomain of suffix.
func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
	}
	return false
}
