package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/handlers"
)

func init() { Register("categories", registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	a := api(r, d)
	a.Get("/api/categories", handlers.ListCategories(d))
	a.Get("/api/categories/counts", handlers.CategoryCounts(d))
	a.Get("/api/categories/{name}/entries", handlers.EntriesByCategory(d))

	m := mutating(a, d)
	m.Post("/api/categories", handlers.AddCategory(d))
	m.Delete("/api/categories/{name}", handlers.RemoveCategory(d))
}
