package deps

import (
	"time"

	"github.com/MrSnakeDoc/navboard/internal/logger"
	"github.com/MrSnakeDoc/navboard/internal/navigation"
	"github.com/MrSnakeDoc/navboard/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time    // for testing, defaults to time.Now
	Navigation   *navigation.Service // document reads and mutations
	Store        store.DocumentStore // used directly only for readiness checks
	StoreKind    string              // "redis" | "memory", reported by /infra
	AllowedHosts []string            // Host headers allowed to access the server
	AllowedCIDRS []string            // IPs allowed to mutate the document
	MetricsCIDRS []string            // IPs allowed to access readyz/infra/metrics endpoints
	TrustProxy   bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	MaxBodyBytes int64               // max mutation request body size
	RateLimit    RateLimit           // per-IP limits on mutation routes
}

// RateLimit configures the token bucket applied to mutation routes.
type RateLimit struct {
	Burst        int
	RefillPerMin int
	MaxEntries   int
}
