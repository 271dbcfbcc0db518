package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/meridian-crm/meridian-crm/internal/app"
	"github.com/meridian-crm/meridian-crm/internal/audit"
	"github.com/meridian-crm/meridian-crm/internal/auth"
	"github.com/meridian-crm/meridian-crm/internal/dashboard"
	"github.com/meridian-crm/meridian-crm/internal/documents"
	"github.com/meridian-crm/meridian-crm/internal/leads"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/items"
	"github.com/meridian-crm/meridian-crm/internal/masterdata/parties"
	"github.com/meridian-crm/meridian-crm/internal/observability"
	"github.com/meridian-crm/meridian-crm/internal/reports"
	"github.com/meridian-crm/meridian-crm/internal/settings"
	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/meridian-crm/meridian-crm/jobs"
	"github.com/meridian-crm/meridian-crm/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	metrics := observability.NewMetrics()

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := auth.NewHandler(logger, authService)

	auditLogger := shared.NewDocumentLogger(dbpool)

	partyRepo := parties.NewRepository(dbpool)
	partyService := parties.NewService(partyRepo)
	partyHandler := parties.NewHandler(logger, partyService)

	itemRepo := items.NewRepository(dbpool)
	itemService := items.NewService(itemRepo)
	itemHandler := items.NewHandler(logger, itemService)

	settingsRepo := settings.NewRepository(dbpool)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(logger, settingsService)

	taxResolver := documents.NewTaxResolver(cfg.HomeStateCode)
	documentRepo := documents.NewRepository(dbpool)
	documentService := documents.NewService(documentRepo, partyRepo, itemRepo, settingsRepo, taxResolver, auditLogger)

	reportClient := report.NewClient(cfg.GotenbergURL)
	if err := reportClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}
	pdfRenderer := documents.NewPDFRenderer(reportClient, settingsRepo)
	documentHandler := documents.NewHandler(logger, documentService, pdfRenderer)

	leadRepo := leads.NewRepository(dbpool)
	leadService := leads.NewService(leadRepo, documentService)
	leadPDFRenderer := leads.NewPDFRenderer(reportClient, settingsRepo)
	leadHandler := leads.NewHandler(logger, leadService, leadPDFRenderer)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo)
	reportsHandler := reports.NewHandler(logger, reportsService)

	auditHandler := audit.NewHandler(logger, audit.NewRepository(dbpool))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		AuthService:      authService,
		AuthHandler:      authHandler,
		PartiesHandler:   partyHandler,
		ItemsHandler:     itemHandler,
		LeadsHandler:     leadHandler,
		DocumentsHandler: documentHandler,
		SettingsHandler:  settingsHandler,
		DashboardHandler: dashboardHandler,
		ReportsHandler:   reportsHandler,
		AuditHandler:     auditHandler,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
