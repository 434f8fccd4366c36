package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/govidsearch/internal/config"
	"github.com/jonesrussell/govidsearch/internal/handlers"
	"github.com/jonesrussell/govidsearch/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

func NewRouter(cfg *config.Config, videoHandler *handlers.VideoHandler, siteHandler *handlers.SiteHandler, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")

	videos := v1.Group("/videos")
	videos.GET("/search", videoHandler.Search)
	videos.GET("/detail", videoHandler.Detail)

	sites := v1.Group("/sites")
	sites.GET("", siteHandler.List)
	sites.GET("/metadata", siteHandler.Metadata)
	sites.POST("/import", siteHandler.Import)
	sites.GET("/:id", siteHandler.Get)
	sites.POST("/:id/toggle", siteHandler.Toggle)
	sites.POST("/:id/test", siteHandler.Test)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
