package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
)

// api scopes r to the public API: host filtering and caller resolution.
func api(r chi.Router, d deps.Deps) chi.Router {
	return r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.Identify(d.Resolver, d.Logger),
	)
}

// mutating adds the shared per-client mutation budget.
func mutating(r chi.Router, d deps.Deps) chi.Router {
	if d.MutationLimit == nil {
		return r
	}
	return r.With(d.MutationLimit)
}

// identified rejects anonymous callers.
func identified(r chi.Router) chi.Router {
	return r.With(mw.RequireIdentity)
}
