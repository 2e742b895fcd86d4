package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"prepmate/catalog"
	"prepmate/config"
	"prepmate/controllers"
	"prepmate/db"
	"prepmate/middlewares"
	"prepmate/routes"
	"prepmate/services"
	"prepmate/store"
	"prepmate/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.prod.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	ctx := context.Background()

	gemini, err := services.NewGeminiClient(ctx, cfg.Gemini.ApiKey)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer gemini.Close()

	feedbackStore := store.NewMongoStore(db.FeedbackCollection)
	if err := feedbackStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure feedback indexes: %v", err)
	}
	catalogStore := catalog.NewMongoCatalog(db.InterviewCollection)

	// Seed a demo catalog entry on first boot
	utils.SeedDemoInterview(ctx, catalogStore)

	timeout := time.Duration(cfg.Analysis.TimeoutSeconds) * time.Second
	audioClient := services.NewAudioFeatureClient(cfg.Analysis.AudioServiceURL, timeout)
	grammarClient := services.NewGrammarClient(cfg.Analysis.GrammarServiceURL, timeout)
	textAnalyzer := services.NewTextAnalysisService(grammarClient, gemini)
	reviewGenerator := services.NewGeminiReviewGenerator(gemini)

	sessions := services.NewSessionService(feedbackStore)
	feedback := services.NewFeedbackService(sessions, feedbackStore, catalogStore, audioClient, textAnalyzer, reviewGenerator, timeout)
	interviews := services.NewInterviewService(catalogStore, gemini)
	transcriber := services.NewTranscriptionClient(cfg.Analysis.TranscriptionServiceURL, timeout)

	router := setupRouter(cfg, &controllers.FeedbackController{
		Sessions: sessions,
		Feedback: feedback,
	}, &controllers.InterviewController{
		Interviews: interviews,
		Catalog:    catalogStore,
	}, &controllers.AudioController{
		Transcriber: transcriber,
	})

	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, fc *controllers.FeedbackController, ic *controllers.InterviewController, ac *controllers.AudioController) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "API is running successfully"})
	})

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg.JWT.Secret))
	{
		routes.SetupFeedbackRoutes(auth, fc)
		routes.SetupInterviewRoutes(auth, ic)
		routes.SetupAudioRoutes(auth, ac)
	}

	return router
}
