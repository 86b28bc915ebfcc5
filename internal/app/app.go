package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/navboard/internal/config"
	"github.com/MrSnakeDoc/navboard/internal/httpserver"
	"github.com/MrSnakeDoc/navboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navboard/internal/logger"
	"github.com/MrSnakeDoc/navboard/internal/navigation"
	"github.com/MrSnakeDoc/navboard/internal/redis"
	"github.com/MrSnakeDoc/navboard/internal/seed"
	"github.com/MrSnakeDoc/navboard/internal/store"
	"github.com/MrSnakeDoc/navboard/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/navboard/internal/store/redis"
	"github.com/MrSnakeDoc/navboard/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	seeder      *seed.Seeder
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var (
		docStore    store.DocumentStore
		redisClient *goredis.Client
	)

	switch cfg.Store {
	case config.StoreRedis:
		// Initialize Redis early - fail fast if unavailable
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient.Named("redis"))
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		docStore = redisstore.NewStore(client, redisstore.Options{
			Key:        cfg.DocumentKey,
			MaxRetries: cfg.UpdateMaxRetries,
		})
	case config.StoreMemory:
		loggerClient.Warn("using in-memory store, the document will not survive a restart")
		docStore = memory.New(cfg.DocumentKey)
	}

	var seeder *seed.Seeder
	if cfg.SeedFile != "" {
		seeder = seed.NewSeeder(docStore, cfg.SeedFile, cfg.SeedFormat, loggerClient.Named("seed"))
	}

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		Navigation:   navigation.NewService(docStore, loggerClient.Named("navigation")),
		Store:        docStore,
		StoreKind:    cfg.Store,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		MetricsCIDRS: cfg.MetricsCIDRS,
		TrustProxy:   cfg.TrustProxy,
		MaxBodyBytes: cfg.MaxBodyBytes,
		RateLimit: deps.RateLimit{
			Burst:        cfg.RateLimitBurst,
			RefillPerMin: cfg.RateLimitPerMin,
			MaxEntries:   cfg.RateLimitEntries,
		},
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		seeder:      seeder,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting navboard v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String(), logger.String("store", a.cfg.Store))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed seed is not fatal, the page still works on an empty document
	if a.seeder != nil {
		seedCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
		if _, err := a.seeder.Seed(seedCtx); err != nil {
			a.logger.Warn("seeding skipped", logger.Error(err))
		}
		cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	_ = a.logger.Sync()
	a.logger.Info("✅ navboard stopped cleanly")
	return nil
}
