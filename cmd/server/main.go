package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"praxis/internal/config"
	"praxis/internal/handler"
	"praxis/internal/repository"
	"praxis/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Practice Layout Analyzer")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize the knowledge store. The analyzer can run without it,
	// serving built-in benchmark defaults.
	var repo *repository.PostgresRepository
	repo, err = repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Printf("⚠️  Knowledge store unavailable (%v)", err)
		log.Printf("   Serving built-in %s benchmark defaults; analysis logging disabled", service.DefaultBenchmarksVersion)
		repo = nil
	} else {
		defer repo.Close()
		log.Println("✅ Connected to PostgreSQL knowledge store")
	}

	// Wire the scoring pipeline from configuration
	scoring := service.DefaultScoringConfig()
	scoring.Distance.FloorPenalty = cfg.Scoring.FloorPenalty
	scoring.Distance.ShortMax = cfg.Scoring.DistanceShortMax
	scoring.Distance.MediumMax = cfg.Scoring.DistanceMediumMax
	scoring.Weights.Efficiency = cfg.Scoring.WeightEfficiency
	scoring.Weights.RoomSize = cfg.Scoring.WeightRoomSize
	scoring.Weights.Staffing = cfg.Scoring.WeightStaffing
	scoring.Weights.Capacity = cfg.Scoring.WeightCapacity
	scoring.Workflow.PenaltyPerPoint = cfg.Scoring.WorkflowPenaltyPerPoint
	scoring.Workflow.OptimalTotalDistance = cfg.Scoring.WorkflowOptimalTotal
	scoring.Workflow.OptimalStepDistance = cfg.Scoring.WorkflowOptimalStep
	scoring.Capacity.PatientsPerRoomPerDay = cfg.Scoring.PatientsPerRoomPerDay
	scoring.Capacity.DefaultPatientsPerHour = cfg.Scoring.DefaultPatientsPerHour

	var store service.KnowledgeStore
	var logs service.AnalysisLogger
	if repo != nil {
		store = repo
		logs = repo
	}
	analyzer := service.NewAnalyzerService(
		scoring,
		store,
		time.Duration(cfg.Benchmark.CacheTTLSeconds)*time.Second,
		logs,
	)

	log.Println("✅ Scoring pipeline initialized")

	// Initialize handlers
	analyzeHandler := handler.NewAnalyzeHandler(analyzer)
	benchmarkHandler := handler.NewBenchmarkHandler(analyzer, repo, 20, 100, cfg.Benchmark.EmbeddingDimensions)
	embeddingHandler := handler.NewEmbeddingHandler(repo, cfg.Benchmark.EmbeddingDimensions)
	feedbackHandler := handler.NewFeedbackHandler(analyzer)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "practice-layout-analyzer",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Analysis endpoints
		apiV1.POST("/analyze", analyzeHandler.Analyze)
		apiV1.POST("/analyze/workflow", analyzeHandler.AnalyzeWorkflow)

		// Benchmark/knowledge endpoints
		apiV1.GET("/benchmarks", benchmarkHandler.List)
		apiV1.GET("/knowledge/search", benchmarkHandler.Search)
		apiV1.POST("/knowledge/search/semantic", benchmarkHandler.SemanticSearch)

		// Embedding endpoints
		apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
		apiV1.PUT("/embeddings/:id", embeddingHandler.Update)

		// Feedback endpoint
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
