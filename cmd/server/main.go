package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dolegal-backend/internal/config"
	"dolegal-backend/internal/handlers"
	"dolegal-backend/internal/logger"
	"dolegal-backend/internal/metrics"
	"dolegal-backend/internal/router"
	"dolegal-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.Env))
	log.Info("starting DoLegal backend", slog.String("env", cfg.Env))

	// ──── Step 2: Initialize Metrics ────
	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	// ──── Step 3: Initialize Gemini Client ────
	// A missing or broken key leaves the generator nil; chat then refuses traffic.
	var generator services.TextGenerator
	if cfg.AIConfigured() {
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("error configuring Gemini client", slog.String("error", err.Error()))
		} else {
			defer geminiService.Close()
			generator = geminiService
			log.Info("Gemini client initialized", slog.String("model", geminiService.ModelName()))
		}
	} else {
		log.Error("GEMINI_API_KEY environment variable not set, chat is disabled")
	}

	// ──── Step 4: Initialize Handlers ────
	chatService := services.NewChatService(generator, m)
	chatHandler := handlers.NewChatHandler(chatService, log, m)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(log, chatHandler, metrics.Handler(registry), cfg.AllowedOrigins)
	log.Info("CORS allow-list built", slog.Any("origins", cfg.AllowedOrigins))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	log.Info("DoLegal backend ready", slog.String("addr", "http://localhost:"+cfg.Port))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
