package main // Entry point package

import (
	"context"   // root context cancelled on shutdown
	"errors"    // distinguishes a clean server close
	"net/http"  // http.ErrServerClosed
	"os"        // stdout for logs, exit codes
	"os/signal" // SIGINT/SIGTERM handling
	"syscall"   // SIGTERM
	"time"      // shutdown grace period

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's built-in middleware (recover)
	"github.com/redis/go-redis/v9"                  // Redis client for sessions, rate limit, cache
	"go.uber.org/zap"                               // structured logger

	"github.com/iliyamo/cinema-ticketing/internal/config"     // Internal config loader
	"github.com/iliyamo/cinema-ticketing/internal/database"   // Connection opening and schema
	"github.com/iliyamo/cinema-ticketing/internal/handler"    // HTTP handlers
	"github.com/iliyamo/cinema-ticketing/internal/logging"    // zap setup
	"github.com/iliyamo/cinema-ticketing/internal/middleware" // Request log, rate limit, cache
	"github.com/iliyamo/cinema-ticketing/internal/queue"      // Ticket event consumer
	"github.com/iliyamo/cinema-ticketing/internal/repository" // SQL repositories
	"github.com/iliyamo/cinema-ticketing/internal/router"     // Internal router setup
	"github.com/iliyamo/cinema-ticketing/internal/service"    // Business services
	"github.com/iliyamo/cinema-ticketing/internal/websession" // Visitor sessions
)

func main() {
	cfg := config.Load() // Load environment config
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		User:   cfg.DBUser,
		Pass:   cfg.DBPass,
		Host:   cfg.DBHost,
		Port:   cfg.DBPort,
		Name:   cfg.DBName,
	})
	if err != nil {
		logger.Error("open database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()
	if cfg.DBAutoSchema {
		if err := database.EnsureSchema(ctx, db, dialect); err != nil {
			logger.Error("create schema", zap.Error(err))
			os.Exit(1)
		}
	}

	rdb := config.NewRedisClient(logger) // nil when Redis is disabled or unreachable
	var store websession.Store = websession.NewMemoryStore()
	if rdb != nil {
		defer rdb.Close()
		store = websession.NewRedisStore(rdb, "websession")
	}
	sm := websession.NewManager(store, websession.Options{
		Secret:     cfg.SessionSecret,
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.Env == "prod",
	})

	var publisher service.EventPublisher = service.NopPublisher{}
	if cfg.QueueEnabled {
		publisher = service.AMQPPublisher{URL: cfg.RabbitURL}
		consumer := &queue.Consumer{URL: cfg.RabbitURL, LogPath: cfg.TicketLogPath, Logger: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("ticket consumer stopped", zap.Error(err))
			}
		}()
	}

	sessions := service.NewSessionService(repository.NewSessionRepo(db, dialect))
	users := service.NewUserService(repository.NewUserRepo(db, dialect), cfg.BcryptCost)
	tickets := service.NewTicketService(repository.NewTicketRepo(db, dialect), publisher, logger)

	sh := handler.NewSessionHandler(sessions, tickets, logger, cfg.PosterMaxBytes)
	opts := router.Options{AdminEmails: cfg.AdminEmails}
	if rdb != nil {
		cacheCfg := config.LoadCacheConfig()
		opts.FormLimiter = middleware.NewLoginThrottle(config.LoadRateLimitConfig(), rdb, logger)
		opts.PosterCache = middleware.NewRedisCache(cacheCfg, rdb)
		sh.PosterChanged = posterInvalidator(cacheCfg, rdb, logger)
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	router.Register(e, sm, router.Handlers{
		Sessions: sh,
		Booking:  handler.NewBookingHandler(sessions, tickets, logger),
		Users:    handler.NewUserHandler(users, sm, logger),
		Health:   handler.Health(db),
	}, opts, logger)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("db", string(dialect)))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func posterInvalidator(cfg config.CacheConfig, rdb *redis.Client, logger *zap.Logger) func(ctx context.Context, path string) {
	return func(ctx context.Context, path string) {
		if err := middleware.InvalidatePath(ctx, cfg, rdb, path); err != nil {
			logger.Warn("invalidate poster cache failed", zap.String("path", path), zap.Error(err))
		}
	}
}
