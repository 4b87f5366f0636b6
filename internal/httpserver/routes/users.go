package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/handlers"
)

func init() {
	Register("users", registerUsers)
	Register("seed", registerSeed)
}

func registerUsers(r chi.Router, d deps.Deps) {
	a := api(r, d)
	a.Get("/api/users/{key}/profile", handlers.UserProfile(d))
	mutating(a, d).Put("/api/users/{key}/role", handlers.AssignRole(d))
}

func registerSeed(r chi.Router, d deps.Deps) {
	mutating(identified(api(r, d)), d).Post("/api/seed/reload", handlers.ReloadSeed(d))
}
