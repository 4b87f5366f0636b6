package deps

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/version"
)

// PersistState reports whether Redis may lag behind memory.
type PersistState interface {
	Dirty() bool
}

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Build             version.Info          // reported by /healthz
	TimeNow           func() time.Time      // for testing, defaults to time.Now
	AllowedHosts      []string              // Host headers allowed to access the server
	AllowedCIDRS      []string              // IPs allowed to access healthz/readyz/infra endpoints
	TrustProxy        bool                  // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateBurst         int                   // mutation burst per client IP
	RatePerMin        int                   // sustained mutations per minute per client IP
	Catalog           *catalog.Service      // entries, categories, roles and profiles
	Resolver          mw.CallerResolver     // bearer token -> caller
	RedisClient       redis.UniversalClient // nil when running memory only
	Persister         PersistState          // nil when running memory only
	SeedFile          string                // seed file path (empty = no seed)
	SeedReloadTrigger chan struct{}         // manual seed reload (nil if no seed file)

	// MutationLimit is shared by every mutating route so the budget is
	// per client, not per route. Built by the server.
	MutationLimit func(http.Handler) http.Handler
}
