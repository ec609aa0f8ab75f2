package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"journeatz-api/auth"
	"journeatz-api/config"
	"journeatz-api/handlers"
	"journeatz-api/logging"
	"journeatz-api/middleware"
	"journeatz-api/routes"
	"journeatz-api/seed"
	"journeatz-api/storage"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := cfg.OpenDB()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	storage.Use(storage.NewGorm(db))
	middleware.Init(cfg.JWTSecret)

	authSvc := auth.NewService(storage.Current(), cfg.RequireEmailConfirm)

	if cfg.DemoSeed {
		if err := seed.Demo(storage.Current()); err != nil {
			logger.Error("demo seed failed", "error", err)
			os.Exit(1)
		}
		logger.Info("demo accounts seeded")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// CORS for the single-page client
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	routes.SetupRoutes(r, handlers.NewAuthHandler(authSvc))

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
