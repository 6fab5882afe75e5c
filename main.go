package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Rainerrr/Mizrahi-Automations/config"
	_ "github.com/Rainerrr/Mizrahi-Automations/docs"
	"github.com/Rainerrr/Mizrahi-Automations/internal/cache"
	"github.com/Rainerrr/Mizrahi-Automations/internal/checks"
	"github.com/Rainerrr/Mizrahi-Automations/internal/database"
	"github.com/Rainerrr/Mizrahi-Automations/internal/handlers"
	"github.com/Rainerrr/Mizrahi-Automations/internal/middleware"
	"github.com/Rainerrr/Mizrahi-Automations/internal/repository"
	"github.com/Rainerrr/Mizrahi-Automations/internal/services"
	"github.com/Rainerrr/Mizrahi-Automations/internal/tase"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taskrunner"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taxonomy"
)

const denylistMirrorFile = "denylist_cache.json"

// @title Mizrahi Trustee Automations API
// @version 1.0
// @description Validation engine for K.303 disclosure reports and manager special-transaction reports of supervised mutual funds.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize external clients; both are optional and the checks that
	// depend on them degrade to warnings when absent
	var taseClient *tase.Client
	if cfg.TaseAPIKey != "" {
		if cfg.TaseBaseURL != "" {
			taseClient = tase.NewClientWithBaseURL(cfg.TaseAPIKey, cfg.TaseBaseURL)
		} else {
			taseClient = tase.NewClient(cfg.TaseAPIKey)
		}
	} else {
		log.Printf("TASE_API_KEY not set; closing-price checks disabled")
	}

	var runnerClient *taskrunner.Client
	if cfg.TaskRunnerToken != "" {
		if cfg.TaskRunnerBaseURL != "" {
			runnerClient = taskrunner.NewClientWithBaseURL(cfg.TaskRunnerToken, cfg.TaskRunnerBaseURL)
		} else {
			runnerClient = taskrunner.NewClient(cfg.TaskRunnerToken)
		}
	} else {
		log.Printf("TASKRUNNER_TOKEN not set; denylist checks and the K.303 automation disabled")
	}

	// Initialize caches
	memCache := cache.NewMemoryCache(services.DenylistTTL)

	// Initialize repositories
	runRepo := repository.NewRunRepository(db.Pool)

	// Initialize services
	resolver := taxonomy.NewResolver()

	var oracle checks.PriceOracle
	if taseClient != nil {
		oracle = services.NewPricingService(memCache, taseClient)
	}
	var denylistSvc *services.DenylistService
	if runnerClient != nil {
		denylistSvc = services.NewDenylistService(runnerClient, memCache, denylistMirrorFile)
	}

	disclosureSvc := services.NewDisclosureService(resolver, runRepo, cfg.MaxExceptions, cfg.SamplerSeed)
	transactionsSvc := services.NewTransactionsService(oracle, denylistSvc, runRepo,
		cfg.PriceVarianceThreshold, cfg.MaxExceptions, cfg.SamplerSeed)
	automationSvc := services.NewAutomationService(runnerClient, disclosureSvc, cfg.TrusteeName)

	// Initialize handlers
	validationHandler := handlers.NewValidationHandler(disclosureSvc, transactionsSvc,
		cfg.ExpectedPeriod, cfg.TrusteeName, cfg.ManagerName)
	automationHandler := handlers.NewAutomationHandler(automationSvc, cfg.ManagerName)
	runHandler := handlers.NewRunHandler(runRepo)
	taxonomyHandler := handlers.NewTaxonomyHandler(resolver)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.OperatorIdentity())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Validation routes
	router.POST("/api/v1/validations/disclosure", validationHandler.ValidateDisclosure)
	router.POST("/api/v1/validations/transactions", validationHandler.ValidateTransactions)

	// Automation routes
	router.POST("/api/v1/automations/k303", middleware.RequireOperator(), automationHandler.TriggerK303)

	// Run history routes
	router.GET("/api/v1/runs", runHandler.ListRuns)
	router.GET("/api/v1/runs/:id", runHandler.GetRun)
	router.GET("/api/v1/runs/:id/exceptions/:rule", runHandler.GetRunExceptions)

	// Taxonomy routes
	router.GET("/api/v1/taxonomy/:code", taxonomyHandler.GetCode)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
