package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/handlers"
)

func init() { Register("me", registerMe) }

func registerMe(r chi.Router, d deps.Deps) {
	me := identified(api(r, d))
	me.Get("/api/me/is-admin", handlers.IsCallerAdmin(d))
	me.Get("/api/me/is-caller-admin", handlers.IsCallerAdmin(d))
	me.Get("/api/me/role", handlers.CallerRole(d))
	me.Get("/api/me/profile", handlers.CallerProfile(d))
	mutating(me, d).Put("/api/me/profile", handlers.SaveCallerProfile(d))
}
