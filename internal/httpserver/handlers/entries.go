package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
)

type idResponse struct {
	ID string `json:"id"`
}

func ListEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, d.Catalog.Entries())
	}
}

func FeaturedEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, d.Catalog.FeaturedEntries())
	}
}

// SearchEntries ranks entries by ?q= and optionally filters by ?category=.
func SearchEntries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		render.JSON(w, http.StatusOK, d.Catalog.SearchEntries(q.Get("q"), q.Get("category")))
	}
}

func GetEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := d.Catalog.Entry(chi.URLParam(r, "id"))
		if err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.JSON(w, http.StatusOK, e)
	}
}

func AddEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r, d, "add entry")
		if !ok {
			return
		}

		var in domain.EntryInput
		if err := render.Decode(w, r, &in); err != nil {
			render.Error(w, err, d.Logger)
			return
		}

		id, err := d.Catalog.AddEntry(actor, in)
		if err != nil {
			render.Error(w, err, d.Logger)
			return
		}

		w.Header().Set("Location", "/api/entries/"+id)
		render.JSON(w, http.StatusCreated, idResponse{ID: id})
	}
}

// UpdateEntry replaces every field of an entry.
func UpdateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r, d, "update entry")
		if !ok {
			return
		}

		var in domain.EntryInput
		if err := render.Decode(w, r, &in); err != nil {
			render.Error(w, err, d.Logger)
			return
		}

		if err := d.Catalog.UpdateEntry(actor, chi.URLParam(r, "id"), in); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.NoContent(w)
	}
}

func RemoveEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Catalog.RemoveEntry(mw.CallerFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.NoContent(w)
	}
}
