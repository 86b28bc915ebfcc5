package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, covers the whole read-modify-write cycle

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store            string // "redis" | "memory"
	DocumentKey      string // key holding the navigation document (default: data)
	SeedFile         string // optional Homepage file imported when nothing is stored
	SeedFormat       string // "bookmarks" (bookmarks.yaml) | "services" (services.yaml)
	UpdateMaxRetries int    // retries after losing an optimistic write race

	MaxBodyBytes     int64 // max request body size for mutations
	RateLimitBurst   int   // per-IP burst on mutation routes
	RateLimitPerMin  int   // per-IP sustained mutations per minute
	RateLimitEntries int   // max tracked IPs before sweeping

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict mutations to specific IPs/CIDRs
	MetricsCIDRS []string // optional, restrict /metrics and /readyz to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NAVBOARD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NAVBOARD_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("NAVBOARD_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("NAVBOARD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAVBOARD_PRETTY_LOG", true),

		// Document
		Store:            strings.ToLower(getenv("NAVBOARD_STORE", StoreRedis)),
		DocumentKey:      getenv("NAVBOARD_DOCUMENT_KEY", "data"),
		SeedFile:         getenv("NAVBOARD_SEED_FILE", ""), // Optional, empty = no seeding
		SeedFormat:       getenv("NAVBOARD_SEED_FORMAT", "bookmarks"),
		UpdateMaxRetries: getenvInt("NAVBOARD_UPDATE_MAX_RETRIES", 5),

		// Request limits
		MaxBodyBytes:     int64(getenvInt("NAVBOARD_MAX_BODY_BYTES", 64<<10)),
		RateLimitBurst:   getenvInt("NAVBOARD_RATE_LIMIT_BURST", 30),
		RateLimitPerMin:  getenvInt("NAVBOARD_RATE_LIMIT_PER_MIN", 120),
		RateLimitEntries: getenvInt("NAVBOARD_RATE_LIMIT_ENTRIES", 10000),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NAVBOARD_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("NAVBOARD_ALLOWED_CIDRS", "")),
		MetricsCIDRS: parseAllowedIPs(getenv("NAVBOARD_METRICS_CIDRS", "")),
		TrustProxy:   mustBool("NAVBOARD_TRUST_PROXY", false),
	}

	switch cfg.Store {
	case StoreMemory:
	case StoreRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: NAVBOARD_STORE must be %q or %q, got %q", StoreRedis, StoreMemory, cfg.Store))
	}

	if cfg.MaxBodyBytes <= 0 {
		panic(fmt.Sprintf("❌ FATAL: NAVBOARD_MAX_BODY_BYTES must be > 0, got %d", cfg.MaxBodyBytes))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("NAVBOARD_REDIS_ADDR")
	cfg.RedisUser = getenv("NAVBOARD_REDIS_USERNAME", "")
	cfg.RedisPasswordRequired = mustBool("NAVBOARD_REDIS_PASSWORD_REQUIRED", false)
	cfg.RedisPassword = getenv("NAVBOARD_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("NAVBOARD_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: NAVBOARD_REDIS_PASSWORD is required when NAVBOARD_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
