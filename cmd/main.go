package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/date-app-backend/config"
	"github.com/oksasatya/date-app-backend/internal/container"
	"github.com/oksasatya/date-app-backend/internal/interface/middleware"
	"github.com/oksasatya/date-app-backend/internal/router"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
	"github.com/oksasatya/date-app-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	cleanup, err := container.Bootstrap(ctx, cfg, logger, container.Options{RunMigrations: true})
	if err != nil {
		logger.WithError(err).Fatal("bootstrap failed")
	}
	defer cleanup()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.RequestLogger(logger))
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.WithFields(map[string]any{
			"port":  cfg.Port,
			"store": cfg.StoreBackend,
			"auth":  cfg.AuthBackend,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited properly")
}
