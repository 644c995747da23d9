package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	githubAdapter "github.com/chirraaggggg/github-roaster/adapters/github"
	httpAdapter "github.com/chirraaggggg/github-roaster/adapters/http"
	llmAdapter "github.com/chirraaggggg/github-roaster/adapters/llm"
	"github.com/chirraaggggg/github-roaster/adapters/persistence"
	roastUC "github.com/chirraaggggg/github-roaster/internal/application/usecase/roast"
	"github.com/chirraaggggg/github-roaster/internal/config"
	"github.com/chirraaggggg/github-roaster/pkg/logger"
)

func main() {
	fmt.Println("Start GitHub Roaster API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Adapters
	githubService := githubAdapter.NewGitHubAdapter(cfg, nil, appLogger)
	llmService := llmAdapter.NewGroqAdapter(cfg, appLogger)
	sessionCache, err := persistence.NewSessionCache(cfg.Cache.TTL, cfg.Cache.MaxSessions, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot init session cache: %v", err)
	}

	// Use Cases
	roastUseCase := roastUC.NewRoastUseCase(githubService, llmService, sessionCache, cfg.Roast.WordLimit, appLogger)

	// HTTP Handlers
	roastHandler := httpAdapter.NewRoastHandler(roastUseCase, appLogger)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(httpAdapter.CORSMiddleware([]string{
		"http://localhost:5173",
		"http://localhost:3000",
	}))
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	api.Use(httpAdapter.SessionMiddleware())
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/roast", roastHandler.Roast)
		api.POST("/roast/new", roastHandler.NewRoast)
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
