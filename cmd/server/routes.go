package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"memeforge.backend/internal/interfaces/http/handlers"
	"memeforge.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	paymentHandler *handlers.PaymentHandler
	projectHandler *handlers.ProjectHandler
	domainHandler  *handlers.DomainHandler
	priceHandler   *handlers.PriceHandler
	siteHandler    *handlers.SiteHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/wallet", d.authHandler.WalletLogin)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/verify", middleware.IdempotencyMiddleware(), d.paymentHandler.Verify)
			payments.POST("", middleware.IdempotencyMiddleware(), d.paymentHandler.Create)
			payments.GET("", d.paymentHandler.List)
			payments.GET("/:id", d.paymentHandler.GetByID)
		}

		// Project routes (protected)
		projects := v1.Group("/projects")
		projects.Use(d.authMiddleware)
		{
			projects.POST("", d.projectHandler.Create)
			projects.GET("", d.projectHandler.List)
			projects.GET("/:id", d.projectHandler.GetByID)
			projects.POST("/:id/publish", d.projectHandler.Publish)
			projects.POST("/:id/domains", d.domainHandler.Add)
			projects.GET("/:id/domains", d.domainHandler.List)
		}

		// Custom-domain routes (protected)
		domains := v1.Group("/domains")
		domains.Use(d.authMiddleware)
		{
			domains.POST("/:id/verify", d.domainHandler.Verify)
		}

		// Price routes (public)
		price := v1.Group("/price")
		{
			price.GET("/sol", d.priceHandler.SOLPrice)
		}
	}

	// Published site rendering (public)
	r.GET("/sites/:subdomain", d.siteHandler.Render)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "memeforge-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
