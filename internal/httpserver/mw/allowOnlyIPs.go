package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/render"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/utils"
)

// AllowOnlyCIDRS restricts the operational endpoints to the given IPs and
// CIDRs. An empty list leaves them open. trustProxy resolves the client
// from proxy headers and must only be set behind a trusted proxy.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("probe ip filter disabled")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("probe ip filter enabled",
		logger.Int("rules", m.Len()),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Info("probe request from unlisted address rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				render.Fail(w, http.StatusForbidden, "forbidden", "address not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
