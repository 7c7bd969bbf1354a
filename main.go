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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/quickdesk/relay/api"
	"github.com/quickdesk/relay/config"
	"github.com/quickdesk/relay/gateway"
	"github.com/quickdesk/relay/policy"
	"github.com/quickdesk/relay/prompt"
	"github.com/quickdesk/relay/service"
	"github.com/quickdesk/relay/store"
)

func main() {
	// Load .env before reading configuration; a missing file is fine.
	_ = godotenv.Load()
	cfg := config.Load()

	log.Printf("Starting support relay...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabasePath)
	log.Printf("Model: %s", cfg.GeminiModel)
	log.Printf("FAQs source: %s", cfg.FAQsSource)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize completion gateway
	var gw gateway.Gateway
	if cfg.GeminiAPIKey == "" {
		log.Printf("WARNING: GEMINI_API_KEY is not set. Completion calls are disabled until it is configured.")
		gw = gateway.Unconfigured()
	} else {
		gw, err = gateway.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			log.Fatalf("Failed to initialize completion gateway: %v", err)
		}
	}

	// Compose the persona instruction once; immutable for the process lifetime.
	faqs, err := prompt.LoadFAQs(cfg.FAQsSource)
	if err != nil {
		log.Printf("WARNING: %v", err)
	}
	persona := prompt.Persona(faqs)

	// Initialize escalation policy engine
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service and handlers
	svc := service.New(db, gw, policyEngine, persona)
	h := api.NewHandler(svc, cfg.DatabasePath, cfg.StaticDir)

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Support relay started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down support relay...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Support relay stopped")
}
