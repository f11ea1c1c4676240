package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/config"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/geo"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/logger"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/notify"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/security"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/telemetry"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository/kv"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/routes"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *storage.RedisStore
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tel, err := telemetry.Attach(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	app := &Application{cfg: cfg, logger: log}

	var (
		store   port.Store
		checker routes.StorageChecker
	)
	switch cfg.Storage.Backend {
	case "", "memory":
		store = storage.NewMemoryStore(log)
		log.Info("using in-memory storage backend")
	case "redis":
		redisStore, err := storage.NewRedisStore(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
		app.redis = redisStore
		store = redisStore
		checker = redisStore
		log.Info("using redis storage backend")
	case "postgres":
		pool, err := storage.NewPostgresPool(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		app.pool = pool
		store = storage.NewPostgresStore(pool, log)
		checker = poolChecker{pool: pool}
		log.Info("using postgres storage backend")
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	seedAdmin, err := usecase.SeedAdmin(cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Department)
	if err != nil {
		app.closeBackends()
		return nil, fmt.Errorf("seed admin account: %w", err)
	}

	directory := kv.NewAccountDirectory(store, seedAdmin, log)
	reports := kv.NewReportRepository(store, log)
	alerts := kv.NewAlertRepository(store, log)
	sessions := kv.NewSessionStore(store)
	safetyStore := kv.NewSafetyStatusStore(store, log)

	passwordValidator := security.DefaultPasswordValidator(cfg.Password.MinLength, cfg.Password.MinScore)
	geocoder := geo.NewNominatimGeocoder(cfg.SOS.GeocodeBaseURL, cfg.SOS.GeocodeTimeout, log)
	notifier := notify.NewLoggingAlertNotifier(log)

	accountService := usecase.NewAccountService(directory, passwordValidator, log)
	sessionService := usecase.NewSessionService(directory, sessions, log)
	reportService := usecase.NewReportService(reports, directory, log)
	sosService := usecase.NewSOSService(alerts, geocoder, notifier, tel.SOSActivations(), cfg.SOS.HoldDuration, log)
	safetyService := usecase.NewSafetyService(safetyStore, log)

	app.engine = routes.Register(routes.Dependencies{
		Config:    cfg,
		Logger:    log,
		Directory: directory,
		Storage:   checker,
		Services: routes.ServiceSet{
			Accounts: accountService,
			Sessions: sessionService,
			Reports:  reportService,
			SOS:      sosService,
			Safety:   safetyService,
		},
	})

	return app, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.closeBackends()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting campus safety API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

func (a *Application) closeBackends() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
}

type poolChecker struct {
	pool *pgxpool.Pool
}

func (c poolChecker) HealthCheck(ctx context.Context) error {
	return c.pool.Ping(ctx)
}
