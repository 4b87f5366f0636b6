package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/config"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/identity"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/redis"
	"github.com/MrSnakeDoc/toolshelf/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/toolshelf/internal/store/redis"
	"github.com/MrSnakeDoc/toolshelf/internal/utils"
	"github.com/MrSnakeDoc/toolshelf/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	catalog      *catalog.Service
	persister    *scheduler.Persister
	seedReloader *scheduler.SeedReloader
}

func New() *App {
	if err := config.LoadDotenv(os.Getenv("TOOLSHELF_ENV_FILE")); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️ %v\n", err)
	}
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	resolver, err := identity.NewResolver(cfg.JWTSecret,
		identity.WithIssuer(cfg.JWTIssuer),
		identity.WithAudience(cfg.JWTAudience),
		identity.WithLeeway(cfg.JWTLeeway),
	)
	if err != nil {
		loggerClient.Errorf("Failed to initialize identity resolver: %v", err)
		os.Exit(1)
	}

	var (
		svc         *catalog.Service
		opts        []catalog.Option
		redisClient *goredis.Client
		store       *redisstore.Store
		persister   *scheduler.Persister
	)

	if cfg.PersistenceEnabled() {
		// Fail fast: a configured backend that never answers is a deployment error
		redisClient, err = redis.New(context.Background(), redis.ConnectOptions{
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
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")

		store = redisstore.NewStore(redisClient)
		persister = scheduler.NewPersister(
			store,
			func() catalog.Snapshot { return svc.Snapshot() },
			loggerClient,
			cfg.PersistQueue,
			cfg.CheckpointInterval,
			cfg.PersistTimeout,
		)
		opts = append(opts, catalog.WithJournal(persister))
	} else {
		loggerClient.Warn("TOOLSHELF_REDIS_ADDR not set, catalog is kept in memory only")
	}

	svc = catalog.New(loggerClient, opts...)

	if store != nil {
		syncer := scheduler.NewRedisSyncer(store, svc, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, starting from defaults",
				logger.Error(err))
			// Whatever Redis holds is now stale relative to memory
			persister.RequestCheckpoint()
		}
	}

	if n := svc.SeedAdmins(cfg.BootstrapAdmins); n > 0 {
		loggerClient.Info("bootstrap admins granted", logger.Int("count", n))
	}

	var (
		seedReloader      *scheduler.SeedReloader
		seedReloadTrigger chan struct{}
	)
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		seedReloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			svc,
			loggerClient,
			cfg.SeedReload,
			seedReloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, seed import disabled")
	}

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Build:             version.Current(),
		TimeNow:           time.Now,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		RateBurst:         cfg.RateBurst,
		RatePerMin:        cfg.RatePerMin,
		Catalog:           svc,
		Resolver:          resolver,
		SeedFile:          cfg.SeedFile,
		SeedReloadTrigger: seedReloadTrigger,
	}
	if redisClient != nil {
		d.RedisClient = redisClient
		d.Persister = persister
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		catalog:      svc,
		persister:    persister,
		seedReloader: seedReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Toolshelf %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.Current().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.persister != nil {
		if err := a.persister.Start(ctx); err != nil {
			return fmt.Errorf("failed to start persister: %w", err)
		}
		a.logger.Info("persister started",
			logger.Duration("checkpoint_interval", a.cfg.CheckpointInterval))
	}

	// Seed import runs after the persister so imported entries reach Redis
	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.SeedReload))
	}

	stats := a.catalog.Stats()
	if stats.Admins == 0 {
		a.logger.Warn("no admin configured, catalog is read-only until TOOLSHELF_BOOTSTRAP_ADMINS is set")
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

	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}

	// After the server: no request can mutate the catalog past this point
	if a.persister != nil {
		a.persister.Stop()
		a.logger.Info("✅ Pending changes flushed")
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("✅ Toolshelf stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
