package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories returns categories in listing order, each with its
// derived isDefault flag.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := d.Catalog.Categories()
		out := make([]domain.Category, 0, len(names))
		for _, name := range names {
			out = append(out, domain.NewCategory(name))
		}
		render.JSON(w, http.StatusOK, out)
	}
}

func CategoryCounts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, d.Catalog.CategoryCounts())
	}
}

func EntriesByCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, d.Catalog.EntriesByCategory(categoryParam(r)))
	}
}

func AddCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r, d, "add category")
		if !ok {
			return
		}

		var req categoryRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, err, d.Logger)
			return
		}

		name, err := d.Catalog.AddCategory(actor, req.Name)
		if err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.JSON(w, http.StatusCreated, domain.NewCategory(name))
	}
}

func RemoveCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Catalog.RemoveCategory(mw.CallerFrom(r.Context()), categoryParam(r)); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.NoContent(w)
	}
}

// categoryParam returns the {name} path segment, unescaped.
func categoryParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
