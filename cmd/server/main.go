package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	var (
		contactRepo repository.ContactRepository
		db          repository.DB
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		mem := repository.NewMemoryContactRepository()
		contactRepo, db = mem, mem
		slog.Warn("using in-memory contact store; submissions are lost on restart")
	default:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		contactRepo, db = repository.NewPgContactRepository(pool), pool
	}

	limiter, closeLimiter := newLimiter(ctx, cfg)
	defer closeLimiter()

	contactService := service.NewContactService(contactRepo)
	router := handler.NewRouter(handler.RouterConfig{
		Health:            handler.New(db),
		Contact:           handler.NewContactHandler(contactService),
		Limiter:           limiter,
		TrustedProxyCount: cfg.TrustedProxyCount,
		AllowedOrigins:    cfg.FrontendURLs,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// newLimiter picks the rate limiter backend. A nil limiter disables limiting.
func newLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, func()) {
	if cfg.RateLimitPerMinute == 0 {
		return nil, func() {}
	}
	if cfg.RedisURL == "" {
		mem := ratelimit.NewMemory(cfg.RateLimitPerMinute, 5*time.Minute)
		return mem, func() { _ = mem.Close() }
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logging.Fatal("invalid REDIS_URL", "error", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable at startup; rate limiting fails open until it recovers", "error", err)
	}
	return ratelimit.NewRedis(rdb, cfg.RateLimitPerMinute), func() { _ = rdb.Close() }
}
