package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/querygen/backend/config"
	httpDelivery "github.com/querygen/backend/internal/delivery/http"
	"github.com/querygen/backend/internal/infrastructure/openai"
	"github.com/querygen/backend/internal/usecase"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting QueryGen Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Model: %s", cfg.OpenAI.Model)

	// Initialize infrastructure dependencies
	chatClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		chatClient.SetDebug(true)
		log.Printf("OpenAI client debug mode enabled")
	}

	// Initialize usecase layer
	generator := usecase.NewGeneratorService(chatClient, usecase.GeneratorConfig{
		Temperature:    cfg.OpenAI.Temperature,
		MaxTokens:      cfg.OpenAI.MaxTokens,
		PerBucketLimit: cfg.Generation.PerBucketLimit,
		Concurrency:    cfg.Generation.Concurrency,
		SelfCheck:      cfg.Generation.SelfCheck,
	})

	log.Printf("Generation: per_bucket=%d, concurrency=%d, self_check=%v",
		cfg.Generation.PerBucketLimit,
		cfg.Generation.Concurrency,
		cfg.Generation.SelfCheck)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(generator)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
