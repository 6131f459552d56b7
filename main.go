// File: inhotel/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inhotel/config"
	"inhotel/database"
	catalogRepo "inhotel/database/repository/catalog"
	"inhotel/handlers"
	"inhotel/middleware"
	"inhotel/routes"
	"inhotel/services/assistant"
	"inhotel/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Catalog: file-backed by default, Mongo for seeded deployments. A
	// missing or corrupt catalog is fatal at startup.
	var catalog catalogRepo.Repository
	switch config.AppConfig.CatalogSource {
	case "mongo":
		database.InitDB()
		catalog = catalogRepo.NewMongoCatalogRepo()
	default:
		repo, err := catalogRepo.NewFileCatalogRepo(config.AppConfig.CatalogPath)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to load hotel catalog: %v", err)
		}
		catalog = repo
	}

	if config.AppConfig.GeminiAPIKey == "" {
		logger.Sugar().Fatal("main: GEMINI_API_KEY is not configured")
	}
	oracle := assistant.NewGeminiOracle(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)

	// Transcript mirror is optional; without Redis the assistant runs with
	// in-memory sessions only.
	var mirror *assistant.RedisTranscriptStore
	if config.AppConfig.RedisAddr != "" {
		utils.InitSessionCache()
		ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
		mirror = assistant.NewRedisTranscriptStore(utils.GetSessionCacheClient(), ttl)
	}

	assistantSvc := assistant.NewDefaultAssistantService(catalog, oracle, mirror, logger)

	assistantHandler := handlers.NewAssistantHandler(assistantSvc)
	hubHandler := handlers.NewHubHandler(assistantSvc)
	hotelsHandler := handlers.NewHotelsHandler(catalog)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateSessionHandler:  assistantHandler.CreateSessionHandler,
		ResetSessionHandler:   assistantHandler.ResetSessionHandler,
		SendMessageHandler:    assistantHandler.SendMessageHandler,
		GetTranscriptHandler:  assistantHandler.GetTranscriptHandler,
		GetViewStateHandler:   assistantHandler.GetViewStateHandler,
		SelectHotelHandler:    assistantHandler.SelectHotelHandler,
		ClearSelectionHandler: assistantHandler.ClearSelectionHandler,

		GetHubHandler:    hubHandler.GetHubHandler,
		UpdateHubHandler: hubHandler.UpdateHubHandler,

		ListHotelsHandler: hotelsHandler.ListHotelsHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
