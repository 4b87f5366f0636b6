package mw

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

type ctxKey string

const ctxKeyCaller ctxKey = "caller"

// CallerResolver turns an Authorization header into a caller.
type CallerResolver interface {
	FromHeader(header string) (domain.Caller, error)
}

// Identify resolves the caller of every request. A request without
// credentials continues as the anonymous caller; a bad credential is
// rejected with 401.
func Identify(resolver CallerResolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := resolver.FromHeader(r.Header.Get("Authorization"))
			if err != nil {
				log.Debug("rejected credential",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				render.Unauthenticated(w, "invalid credential")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RequireIdentity rejects anonymous callers with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerFrom(r.Context()).Anonymous() {
			render.Unauthenticated(w, "an identified caller is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithCaller stores the resolved caller in ctx.
func WithCaller(ctx context.Context, c domain.Caller) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, c)
}

// CallerFrom returns the caller stored in ctx, or the anonymous caller.
func CallerFrom(ctx context.Context) domain.Caller {
	if c, ok := ctx.Value(ctxKeyCaller).(domain.Caller); ok && c.Key != "" {
		return c
	}
	return domain.Caller{Key: domain.AnonymousCaller}
}
