package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
)

type isAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type roleResponse struct {
	Key  string      `json:"key"`
	Role domain.Role `json:"role"`
}

func IsCallerAdmin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, isAdminResponse{
			IsAdmin: d.Catalog.IsCallerAdmin(mw.CallerFrom(r.Context())),
		})
	}
}

func CallerRole(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mw.CallerFrom(r.Context())
		render.JSON(w, http.StatusOK, roleResponse{Key: c.Key, Role: d.Catalog.CallerRole(c)})
	}
}

// CallerProfile answers with the profile, or JSON null when none is saved.
func CallerProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.Catalog.CallerProfile(mw.CallerFrom(r.Context()))
		if !ok {
			render.JSON(w, http.StatusOK, nil)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func SaveCallerProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p domain.Profile
		if err := render.Decode(w, r, &p); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		if err := d.Catalog.SaveCallerProfile(mw.CallerFrom(r.Context()), p); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.NoContent(w)
	}
}
