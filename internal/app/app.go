package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/auracity/admin-review-bot/internal/bot"
	"github.com/auracity/admin-review-bot/internal/config"
	"github.com/auracity/admin-review-bot/internal/draft"
	"github.com/auracity/admin-review-bot/internal/metrics"
	"github.com/auracity/admin-review-bot/internal/repository"
	"github.com/auracity/admin-review-bot/internal/review"
	dbbuilder "github.com/auracity/admin-review-bot/pkg/database"
)

type App struct {
	logger        *zap.Logger
	dbPool        *sql.DB
	redisClient   *redis.Client
	bot           *bot.Bot
	metricsServer *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(dsn),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("database pool initialized", zap.String("driver", cfg.DBDriver))

	repo := repository.NewRatingRepository(dbPool, cfg.DBDriver)
	if err := repo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("database migrate failed: %w", err)
	}

	var redisClient *redis.Client
	var registry review.DraftRegistry
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("redis init failed: %w", err)
		}
		registry = draft.NewRedisRegistry(redisClient)
		logger.Info("redis draft registry initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		registry = draft.NewMemoryRegistry()
		logger.Info("in-memory draft registry initialized")
	}

	svc := review.NewService(repo, registry, logger.Named("review"))

	reviewBot, err := bot.New(cfg.DiscordToken, cfg.CommandPrefix, svc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metrics.Init()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	}

	return &App{
		logger:        logger,
		dbPool:        dbPool,
		redisClient:   redisClient,
		bot:           reviewBot,
		metricsServer: metricsServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("metrics server exited", zap.Error(err))
			}
		}()
		a.logger.Info("metrics endpoint started", zap.String("addr", a.metricsServer.Addr))
	}

	if err := a.bot.Start(); err != nil {
		return fmt.Errorf("bot start failed: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.bot.Stop(); err != nil {
		a.logger.Error("gateway shutdown error", zap.Error(err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Error("metrics server shutdown error", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis shutdown error", zap.Error(err))
		}
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")
	_ = a.logger.Sync()
	return nil
}
