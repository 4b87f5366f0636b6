package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
)

type roleRequest struct {
	Role string `json:"role"`
}

// UserProfile looks up another caller's profile; JSON null when absent.
func UserProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.Catalog.Profile(chi.URLParam(r, "key"))
		if !ok {
			render.JSON(w, http.StatusOK, nil)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func AssignRole(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r, d, "assign role")
		if !ok {
			return
		}

		var req roleRequest
		if err := render.Decode(w, r, &req); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		role, err := domain.ParseRole(req.Role)
		if err != nil {
			render.Error(w, err, d.Logger)
			return
		}

		target := chi.URLParam(r, "key")
		if err := d.Catalog.AssignRole(actor, target, role); err != nil {
			render.Error(w, err, d.Logger)
			return
		}
		render.JSON(w, http.StatusOK, roleResponse{Key: target, Role: role})
	}
}

// requireAdmin rejects a non-admin caller before the request body is read,
// so a guest gets 403 whatever it sent. The catalog checks again under
// its own lock.
func requireAdmin(w http.ResponseWriter, r *http.Request, d deps.Deps, op string) (domain.Caller, bool) {
	actor := mw.CallerFrom(r.Context())
	if !d.Catalog.IsCallerAdmin(actor) {
		render.Error(w, domain.Errorf(domain.ErrUnauthorized, "%s requires the admin role", op), d.Logger)
		return actor, false
	}
	return actor, true
}
