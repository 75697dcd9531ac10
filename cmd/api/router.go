package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ITGlobers/return-app-pmi-poc/internal/shared/middleware"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/container"
)

// SetupRouter wires middleware and routes onto a gin engine.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	// ===== PUBLIC ROUTES =====
	router.GET("/api/v1/health", func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "unavailable"
		}
		cacheStatus := "ok"
		if err := c.Redis.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"database":  dbStatus,
			"cache":     cacheStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// ===== AUTHENTICATED ROUTES =====
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(c.Config.Auth.JWTSecret, c.Config.Auth.AppKeyHash))
	{
		c.ReturnRequestHandler.RegisterRoutes(api)
		c.SettingsHandler.RegisterRoutes(api)
	}

	return router
}
