package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// ReloadSeed triggers a manual import of the seed file. Admin only.
func ReloadSeed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := mw.CallerFrom(r.Context())
		if !d.Catalog.IsCallerAdmin(caller) {
			render.Error(w, domain.Errorf(domain.ErrUnauthorized, "seed reload requires the admin role"), d.Logger)
			return
		}

		if d.SeedReloadTrigger == nil {
			render.Fail(w, http.StatusNotFound, "not_found", "no seed file configured")
			return
		}

		select {
		case d.SeedReloadTrigger <- struct{}{}:
			d.Logger.Info("manual seed reload triggered via endpoint",
				logger.String("caller", caller.Key),
				logger.String("remote_ip", r.RemoteAddr))
			render.JSON(w, http.StatusAccepted, reloadResponse{Triggered: true, Message: "reload triggered"})
		default:
			d.Logger.Warn("seed reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			render.JSON(w, http.StatusTooManyRequests, reloadResponse{Message: "reload already pending, please wait"})
		}
	}
}
