package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/config"
	"github.com/TWEEDOriginal/serverless-intro/internal/handlers"
	"github.com/TWEEDOriginal/serverless-intro/internal/middleware"
	"github.com/TWEEDOriginal/serverless-intro/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize dependencies
	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	logger := container.Logger

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, time.Second))
	router.Use(middleware.CORS())

	handlers.SetupRoutes(router, container.Router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"table":   cfg.Storage.TableName,
		"backend": cfg.Storage.Backend,
	}).Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
