package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/academy-crm-api/api/swagger"
	"github.com/noah-isme/academy-crm-api/internal/handler"
	"github.com/noah-isme/academy-crm-api/internal/middleware"
	"github.com/noah-isme/academy-crm-api/internal/service"
	"github.com/noah-isme/academy-crm-api/internal/store"
	"github.com/noah-isme/academy-crm-api/pkg/config"
	"github.com/noah-isme/academy-crm-api/pkg/gemini"
	"github.com/noah-isme/academy-crm-api/pkg/jobs"
	"github.com/noah-isme/academy-crm-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academy-crm-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academy-crm-api/pkg/middleware/requestid"
	"github.com/noah-isme/academy-crm-api/pkg/storage"
)

// @title Academy CRM API
// @version 0.1.0
// @description Single-tenant football academy management API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.NewSeeded(store.Config{
		DefaultInvoiceAmount: cfg.Billing.DefaultInvoiceAmount,
		InvoiceDueDay:        cfg.Billing.InvoiceDueDay,
	})

	metrics := service.NewMetricsService()
	students := service.NewStudentService(st, nil, logr)
	groups := service.NewGroupService(st, nil, logr)
	payments := service.NewPaymentService(st, nil, logr)
	dashboard := service.NewDashboardService(st, logr, service.DashboardServiceConfig{
		RecentPaymentsLimit: cfg.Dashboard.RecentPaymentsLimit,
		RevenueMonths:       cfg.Dashboard.RevenueMonths,
	})
	portal := service.NewPortalService(st, logr)

	generator := gemini.New(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})
	summaries := service.NewSummaryService(st, generator, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	metricsHandler := handler.NewMetricsHandler(metrics)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	studentHandler := handler.NewStudentHandler(students, summaries, metrics)
	api.GET("/students", studentHandler.List)
	api.POST("/students", studentHandler.Create)
	api.GET("/students/:id", studentHandler.Get)
	api.PUT("/students/:id/group", studentHandler.Reassign)
	api.GET("/students/:id/summary", studentHandler.Summary)

	groupHandler := handler.NewGroupHandler(groups, metrics)
	api.GET("/groups", groupHandler.List)
	api.POST("/groups", groupHandler.Create)
	api.GET("/groups/:id", groupHandler.Get)
	api.POST("/groups/:id/members", groupHandler.AddMember)

	paymentHandler := handler.NewPaymentHandler(payments, metrics)
	api.GET("/payments", paymentHandler.List)
	api.POST("/payments", paymentHandler.Record)
	api.GET("/payments/recent", paymentHandler.Recent)
	api.POST("/payments/invoices", paymentHandler.GenerateInvoices)

	dashboardHandler := handler.NewDashboardHandler(dashboard)
	api.GET("/dashboard", dashboardHandler.Overview)

	portalHandler := handler.NewPortalHandler(portal)
	api.GET("/portal/me", middleware.Identity(cfg.Portal.DefaultStudentID), portalHandler.Me)

	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exports := service.NewExportService(st, files, signer, nil, logr, cfg.APIPrefix+"/exports")

		queue := jobs.NewQueue("exports", exports.Process, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		exports.SetQueue(queue)
		exports.StartCleanup(ctx, cfg.Exports.CleanupInterval, cfg.Exports.SignedURLTTL)

		exportHandler := handler.NewExportHandler(exports)
		api.POST("/exports", exportHandler.Create)
		api.GET("/exports/:id", exportHandler.Status)
		api.GET("/exports/:id/download", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
