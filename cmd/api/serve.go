// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/admin"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/assistant"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/auth"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/authz"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/calendar"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/cases"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/client"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/compliance"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/dashboard"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/document"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/email"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/health"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/invoice"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/message"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/metrics"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/middleware"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/portal"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/rates"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/server"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/storage"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/timeentry"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/user"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/migrations"
)

const (
	drainDelay = 5 * time.Second

	loginAttemptsPerMinute = 5
)

//nolint:funlen // bootstrap code is inherently verbose
func serve(parent context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if telemetry.Enabled() {
		logger.Info("OpenTelemetry tracer initialized", "endpoint", cfg.Otel.Endpoint)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		applied, err := core.Migrate(ctx, db.DB, migrations.FS)
		if err != nil {
			return err
		}
		logger.Info("migrations checked", "applied", applied)
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redis.Enabled() {
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	var telemetryMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		telemetryMetrics = metrics.New(cfg.Metrics.Namespace)
		telemetryMetrics.RegisterDB(db.DB.DB, "primary")
	}

	staffSigner, err := auth.NewSigner(
		middleware.StaffRealm.Name, cfg.JWT.StaffSecret, cfg.JWT.Issuer, cfg.JWT.Expire)
	if err != nil {
		return err
	}
	portalSigner, err := auth.NewSigner(
		middleware.PortalRealm.Name, cfg.JWT.PortalSecret, cfg.JWT.Issuer, cfg.JWT.Expire)
	if err != nil {
		return err
	}

	var (
		objects storage.ObjectStore
		remover document.ObjectRemover
		store   *storage.Store
	)
	if cfg.Storage.Enabled() {
		store, err = storage.New(cfg.Storage)
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			logger.Warn("object storage unavailable", "error", err)
		}
		objects, remover = store, store
	}

	mailer := email.New(cfg.SMTP)

	var completer assistant.Completer
	if cfg.AI.Enabled() {
		completer = assistant.NewOpenAICompleter(cfg.AI)
	}

	secureCookies := cfg.IsProduction()

	userSvc := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(userSvc, staffSigner)

	clientSvc := client.NewService(client.NewRepository(db.DB))
	caseSvc := cases.NewService(cases.NewRepository(db.DB))
	calendarSvc := calendar.NewService(calendar.NewRepository(db.DB))
	rateSvc := rates.NewService(
		rates.NewRepository(db.DB),
		decimal.NewFromFloat(cfg.Billing.DefaultHourlyRate),
	)
	timeSvc := timeentry.NewService(
		timeentry.NewRepository(db.DB),
		timeentry.NewUnitOfWork(db.DB),
		rateSvc,
		telemetryMetrics,
		cfg.Billing.RoundingIncrement,
	)
	invoiceSvc := invoice.NewService(
		invoice.NewRepository(db.DB),
		invoice.Settings{
			TaxRate:          decimal.NewFromFloat(cfg.Billing.DefaultTaxRate),
			PaymentTermsDays: cfg.Billing.PaymentTermsDays,
		},
		telemetryMetrics,
	)

	documentRepo := document.NewRepository(db.DB)
	documentSvc := document.NewService(documentRepo, remover, logger)
	messageSvc := message.NewService(message.NewRepository(db.DB), mailer, telemetryMetrics, logger)
	complianceSvc := compliance.NewService(compliance.NewRepository(db.DB), logger)
	portalSvc := portal.NewService(
		portal.NewRepository(db.DB),
		portalSigner,
		mailer,
		telemetryMetrics,
		portal.Settings{BaseURL: cfg.App.BaseURL, FirmName: cfg.App.Name},
		logger,
	)
	dashboardSvc := dashboard.NewService(dashboard.NewRepository(db.DB))
	assistantSvc := assistant.NewService(
		assistant.NewRepository(db.DB),
		completer,
		cfg.AI.SystemPrompt,
		telemetryMetrics,
		logger,
	)

	healthHandler := health.NewHandler(cfg.App.Version, healthChecks(db, redis, store)...)

	adminCfg := admin.HandlerConfig{
		Repo:    admin.NewRepository(db.DB),
		DBStats: db.Stats,
		DBPing:  db.Ping,
		Version: cfg.App.Version,
	}
	if redis.Enabled() {
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	}

	serviceName := ""
	if telemetry.Enabled() {
		serviceName = cfg.App.Name
	}
	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
		ServiceName:   serviceName,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if telemetryMetrics != nil {
		router.Use(telemetryMetrics.Middleware)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Raw(), middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Window,
				cfg.RateLimit.Burst,
			),
			FailOpen:   true,
			BypassFunc: isProbe,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if telemetryMetrics != nil {
		router.Method(http.MethodGet, "/metrics", telemetryMetrics.Handler())
	}

	staffAuth := middleware.Authenticator(staffSigner, middleware.StaffRealm)
	staffOptional := middleware.OptionalAuth(staffSigner, middleware.StaffRealm)
	portalAuth := middleware.Authenticator(portalSigner, middleware.PortalRealm)
	portalOptional := middleware.OptionalAuth(portalSigner, middleware.PortalRealm)
	loginLimiter := middleware.NewRateLimiter(redis.Raw(), middleware.RateLimitConfig{
		Limit:   middleware.PerMinute(loginAttemptsPerMinute, loginAttemptsPerMinute),
		KeyFunc: middleware.KeyByIPAndPath,
	}).Handler

	authorizer := authz.New(authz.DefaultPolicy(), authz.DefaultRoles())
	objectHandler := storage.NewHandler(objects, documentRepo)

	router.Route("/api", func(r chi.Router) {
		auth.NewHandler(authSvc, secureCookies).
			RegisterRoutes(r, staffAuth, staffOptional, loginLimiter)

		portal.NewHandler(portalSvc, portal.Sources{
			Cases:     caseSvc,
			Invoices:  invoiceSvc,
			Documents: documentSvc,
			Messages:  messageSvc,
		}, secureCookies).RegisterRoutes(r, portalAuth, portalOptional, loginLimiter)

		r.Group(func(r chi.Router) {
			r.Use(staffOptional, portalOptional)
			objectHandler.RegisterDownload(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(staffAuth)
			r.Use(authorizer.Handler)

			user.NewHandler(userSvc).RegisterRoutes(r)
			admin.NewHandler(adminCfg).RegisterRoutes(r)
			portal.NewUsersHandler(portalSvc).RegisterRoutes(r)

			client.NewHandler(clientSvc).RegisterRoutes(r)
			cases.NewHandler(caseSvc).RegisterRoutes(r)
			calendar.NewHandler(calendarSvc).RegisterRoutes(r)
			rates.NewHandler(rateSvc).RegisterRoutes(r)
			timeentry.NewHandler(timeSvc).RegisterRoutes(r)
			invoice.NewHandler(invoiceSvc).RegisterRoutes(r)
			document.NewHandler(documentSvc).RegisterRoutes(r)
			objectHandler.RegisterUpload(r)
			message.NewHandler(messageSvc).RegisterRoutes(r)
			compliance.NewHandler(complianceSvc).RegisterRoutes(r)
			dashboard.NewHandler(dashboardSvc).RegisterRoutes(r)
			assistant.NewHandler(assistantSvc).RegisterRoutes(r)
		})
	})

	logger.Info("features",
		"email", mailer.IsConfigured(),
		"storage", store != nil,
		"ai", assistantSvc.Enabled(),
		"redis", redis.Enabled(),
		"metrics", telemetryMetrics != nil,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// healthChecks lists readiness dependencies. Only the database is
// required; the API keeps serving without Redis or object storage.
func healthChecks(db *core.Database, redis *core.Redis, store *storage.Store) []health.Check {
	checks := []health.Check{
		{Name: "database", Checker: db, Required: true},
	}
	if redis.Enabled() {
		checks = append(checks, health.Check{Name: "redis", Checker: redis})
	}
	if store != nil {
		checks = append(checks, health.Check{Name: "storage", Checker: store})
	}
	return checks
}

func isProbe(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/livez", "/readyz", "/metrics":
		return true
	}
	return false
}

