package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/TurkiHQ/DevConnecter/internal/config"
	api "github.com/TurkiHQ/DevConnecter/internal/http"
	"github.com/TurkiHQ/DevConnecter/internal/log"
	"github.com/TurkiHQ/DevConnecter/internal/metrics"
	"github.com/TurkiHQ/DevConnecter/internal/queue"
	"github.com/TurkiHQ/DevConnecter/internal/repo"
)

// @title DevConnecter API
// @version 1.0
// @description Token-authenticated developer profile service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("mongo indexes", zap.Error(err))
	}

	var limiter *repo.Limiter
	if cfg.RedisAddr != "" {
		rds := repo.NewRedis(cfg.RedisAddr)
		defer rds.Close()
		limiter = repo.NewLimiter(rds, cfg.RateLimitPerMin)
	}

	var events queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		pub, err := queue.NewRabbit(cfg.RabbitURL)
		if err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
		events = pub
	}
	defer events.Close()

	h := api.NewHandler(store, store, cfg, limiter, events)
	h.Health = store
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
