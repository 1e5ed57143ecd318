package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	chatbotHttp "dashboard-analytics-service/internal/chatbot/adapters/http/fiber"
	chatbotRepoPg "dashboard-analytics-service/internal/chatbot/adapters/postgres"
	chatbotUsecase "dashboard-analytics-service/internal/chatbot/core/usecase"

	searchRepoPg "dashboard-analytics-service/internal/search/adapters/postgres"
	searchUsecase "dashboard-analytics-service/internal/search/core/usecase"

	trafficDemo "dashboard-analytics-service/internal/traffic/adapters/demo"
	trafficGa "dashboard-analytics-service/internal/traffic/adapters/ga"
	trafficPorts "dashboard-analytics-service/internal/traffic/core/ports"
	trafficUsecase "dashboard-analytics-service/internal/traffic/core/usecase"

	overviewHttp "dashboard-analytics-service/internal/overview/adapters/http/fiber"
	overviewUsecase "dashboard-analytics-service/internal/overview/core/usecase"

	posthogHttp "dashboard-analytics-service/internal/posthog/adapters/http/fiber"
	posthogClient "dashboard-analytics-service/internal/posthog/adapters/posthog"
	posthogPorts "dashboard-analytics-service/internal/posthog/core/ports"
	posthogUsecase "dashboard-analytics-service/internal/posthog/core/usecase"

	seoauditHttp "dashboard-analytics-service/internal/seoaudit/adapters/http/fiber"
	seoauditClient "dashboard-analytics-service/internal/seoaudit/adapters/pagespeed"
	seoauditPorts "dashboard-analytics-service/internal/seoaudit/core/ports"
	seoauditUsecase "dashboard-analytics-service/internal/seoaudit/core/usecase"

	"dashboard-analytics-service/internal/platform/cache"
	"dashboard-analytics-service/internal/platform/config"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "dashboard-analytics-service/docs"
)

func main() {
	// Config
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping postgres: %v", err)
	}

	// Request cache (shared across routes)
	requestCache := cache.New(cfg.CacheTTL)
	defer requestCache.Stop()

	// Repositories
	conversationRepo := chatbotRepoPg.NewConversationRepository(chatbotRepoPg.NewSQLDB(db))
	searchRepo := searchRepoPg.NewSearchRepository(searchRepoPg.NewSQLDB(db))

	// Traffic reader: real API when credentials are present, otherwise
	// the deterministic demo generator.
	var analyticsReader trafficPorts.AnalyticsReaderPort
	if cfg.AnalyticsConfigured() {
		analyticsReader = trafficGa.NewClient(cfg.AnalyticsAPIURL, cfg.AnalyticsAPIKey, cfg.AnalyticsHostname)
	} else {
		log.Println("analytics credentials missing, serving demo traffic data")
		analyticsReader = trafficDemo.NewGenerator()
	}

	// Optional integrations; a nil reader makes the usecase serve mock data.
	var productReader posthogPorts.ProductAnalyticsPort
	if cfg.PostHogConfigured() {
		productReader = posthogClient.NewClient(cfg.PostHogAPIURL, cfg.PostHogAPIKey, cfg.PostHogProjectID)
	} else {
		log.Println("posthog integration disabled, serving mock product metrics")
	}

	var pageAuditor seoauditPorts.PageAuditPort
	if cfg.SEOAuditConfigured() {
		pageAuditor = seoauditClient.NewClient(cfg.PageSpeedAPIURL, cfg.PageSpeedAPIKey)
	} else {
		log.Println("seo audit integration disabled, serving mock audits")
	}

	// Usecases
	chatbotSeriesUC := chatbotUsecase.NewGetChatbotSeriesUseCase(conversationRepo)
	funnelUC := chatbotUsecase.NewGetFunnelUseCase(conversationRepo)
	searchSeriesUC := searchUsecase.NewGetSearchSeriesUseCase(searchRepo, cfg.SearchRowLimit)
	trafficSeriesUC := trafficUsecase.NewGetTrafficSeriesUseCase(analyticsReader)
	overviewUC := overviewUsecase.NewGetOverviewUseCase(
		chatbotSeriesUC, funnelUC, searchSeriesUC, trafficSeriesUC, cfg.UpstreamTimeout)
	productUC := posthogUsecase.NewGetProductMetricsUseCase(productReader)
	auditUC := seoauditUsecase.NewGetAuditUseCase(pageAuditor)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	overviewHandler := overviewHttp.NewOverviewHandler(overviewUC)
	app.Get("/api/overview", overviewHandler.GetOverview)

	chatbotHandler := chatbotHttp.NewChatbotHandler(chatbotSeriesUC)
	app.Get("/api/chatbot-v2", chatbotHandler.GetChatbotMetrics)

	posthogHandler := posthogHttp.NewPostHogHandler(productUC, requestCache)
	app.Get("/api/posthog", posthogHandler.GetProductMetrics)

	auditHandler := seoauditHttp.NewAuditHandler(auditUC, requestCache, cfg.SEOAuditDefaultURL)
	app.Get("/api/seo-audit", auditHandler.GetAudit)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on %s", cfg.ListenAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}
