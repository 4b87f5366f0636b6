package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
)

type componentStatus struct {
	OK     bool           `json:"ok"`
	Stats  *catalog.Stats `json:"stats,omitempty"`
	Mode   string         `json:"mode,omitempty"`
	Impact string         `json:"impact,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type infraResponse struct {
	StorageMode string                     `json:"storage_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := d.Catalog.Stats()

		components := map[string]componentStatus{
			"catalog": {
				OK:    true,
				Stats: &stats,
			},
			"redis": checkRedis(r.Context(), d),
			"bootstrap": {
				OK:     stats.Admins > 0,
				Impact: adminImpact(stats.Admins),
			},
		}

		render.JSON(w, http.StatusOK, infraResponse{
			StorageMode: determineStorageMode(components),
			Components:  components,
		})
	}
}

func adminImpact(admins int) string {
	if admins == 0 {
		return "catalog-read-only"
	}
	return "none"
}

func determineStorageMode(components map[string]componentStatus) string {
	redis, exists := components["redis"]
	switch {
	case !exists || redis.Mode == "disabled":
		return "memory-only"
	case !redis.OK:
		return "degraded" // mutations are kept in memory only until Redis returns
	default:
		return "persistent"
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "state-lost-on-restart",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-paused",
			Error:  "timeout",
		}
	}

	status := componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "none",
	}
	if d.Persister != nil && d.Persister.Dirty() {
		status.Mode = "catching-up"
		status.Impact = "checkpoint-pending"
	}
	return status
}
