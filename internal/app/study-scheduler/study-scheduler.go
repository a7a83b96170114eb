package studyscheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kamalesh73/smart--study-scheduler/internal/aiprovider"
	"github.com/kamalesh73/smart--study-scheduler/internal/cache"
	"github.com/kamalesh73/smart--study-scheduler/internal/config"
	"github.com/kamalesh73/smart--study-scheduler/internal/generator"
	"github.com/kamalesh73/smart--study-scheduler/internal/http/session"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/jwt"
	"github.com/kamalesh73/smart--study-scheduler/internal/lib/sl"
	"github.com/kamalesh73/smart--study-scheduler/internal/metrics"
	"github.com/kamalesh73/smart--study-scheduler/internal/migrations"
	"github.com/kamalesh73/smart--study-scheduler/internal/rabbitmq"
	authservice "github.com/kamalesh73/smart--study-scheduler/internal/services/auth"
	dashboardservice "github.com/kamalesh73/smart--study-scheduler/internal/services/dashboard"
	scheduleservice "github.com/kamalesh73/smart--study-scheduler/internal/services/schedule"
	"github.com/kamalesh73/smart--study-scheduler/internal/storage/repository"
	"github.com/kamalesh73/smart--study-scheduler/internal/web"
)

const shutdownTimeout = 15 * time.Second

type dashboardCache interface {
	dashboardservice.Cache
	scheduleservice.Cache
	Close() error
}

type eventPublisher interface {
	scheduleservice.Publisher
	Close() error
}

// App — HTTP-сервер со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	cache     dashboardCache
	publisher eventPublisher
}

// New подключается к хранилищам, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var dcache dashboardCache = cache.Noop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		dcache = redisCache
	} else {
		logger.Warn("redis address is empty, dashboard cache disabled")
	}

	var publisher eventPublisher = rabbitmq.Noop{}
	if cfg.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ)
		if err != nil {
			_ = dcache.Close()
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = p
	} else {
		logger.Warn("rabbitmq url is empty, schedule events disabled")
	}

	model, err := aiprovider.NewClient(ctx, aiprovider.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	})
	if err != nil {
		_ = publisher.Close()
		_ = dcache.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	gen := generator.New(logger, model, cfg.AI.Timeout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(reg)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	scheduleService := scheduleservice.New(logger, gen, db, dcache, publisher, recorder)
	dashboardService := dashboardservice.New(logger, db, dcache, cfg.DashboardCacheTTL)

	renderer, err := web.NewRenderer()
	if err != nil {
		_ = publisher.Close()
		_ = dcache.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sessions := session.NewManager(cfg.CookieName, cfg.TokenTTL, cfg.SecureCookies(), cfg.JWTSecretKey)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:      authService,
		Schedule:  scheduleService,
		Dashboard: dashboardService,
		Sessions:  sessions,
		Renderer:  renderer,
		DB:        db,
		Gatherer:  reg,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     dcache,
		publisher: publisher,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер
// и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
}

func (a *App) close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Error("failed to close rabbitmq publisher", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
