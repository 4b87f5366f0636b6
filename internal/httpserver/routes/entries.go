package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/handlers"
)

func init() { Register("entries", registerEntries) }

func registerEntries(r chi.Router, d deps.Deps) {
	a := api(r, d)
	a.Get("/api/entries", handlers.ListEntries(d))
	a.Get("/api/entries/featured", handlers.FeaturedEntries(d))
	a.Get("/api/entries/search", handlers.SearchEntries(d))
	a.Get("/api/entries/{id}", handlers.GetEntry(d))

	m := mutating(a, d)
	m.Post("/api/entries", handlers.AddEntry(d))
	m.Put("/api/entries/{id}", handlers.UpdateEntry(d))
	m.Delete("/api/entries/{id}", handlers.RemoveEntry(d))
}
