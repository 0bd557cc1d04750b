package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/precept-hq/contact-api/config"
	"github.com/precept-hq/contact-api/internal/handlers"
	"github.com/precept-hq/contact-api/internal/mailer"
	"github.com/precept-hq/contact-api/internal/middleware"
	"github.com/precept-hq/contact-api/internal/services"
	"github.com/precept-hq/contact-api/pkg/logger"
	"github.com/precept-hq/contact-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Precept contact API",
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize mail pipeline
	dispatcher := mailer.NewSMTPDispatcher(cfg.Mail)
	contactService := services.NewContactService(cfg, dispatcher)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService)
	healthHandler := handlers.NewHealthHandler()

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Rate limiters: a broad per-IP guard for all API routes, plus the
	// fixed submission window for the contact form itself
	generalRateLimiter := middleware.NewRateLimiter(100, 200)
	contactRateLimiter := middleware.NewContactRateLimiter(
		cfg.RateLimit.ContactLimit,
		cfg.RateLimit.ContactWindow,
	)
	defer generalRateLimiter.Stop()

	// API routes
	api := router.Group("/api")
	api.Use(generalRateLimiter.Middleware())
	api.GET("/health", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.POST("/contact",
		contactRateLimiter.Middleware(),
		middleware.BodySizeLimitMiddleware(100*1024),
		contactHandler.SubmitContact,
	)

	// Landing page
	router.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Write timeout must outlast the SMTP socket timeout so a slow
		// relay surfaces as a 500, not a dropped connection.
		WriteTimeout:   cfg.Mail.SocketTimeout + 30*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
