package main

import (
	"context"
	"net/http"
	"time"

	"homefinder-listings/internal/middleware"
	"homefinder-listings/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.setupHealthCheck()
	a.setupAPIRoutes()
}

// setupStaticRoutes serves uploaded images and metrics
func (a *App) setupStaticRoutes() {
	a.Router.Static(a.Config.Uploads.Route, a.images.Dir())
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck reports unhealthy when any backing service fails to answer
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		for _, check := range a.checks {
			if err := check.ping(ctx); err != nil {
				logger.GlobalLogger.Errorf("%s ping failed: %v", check.name, err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": check.name + " unavailable"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": a.Config.Storage.Driver})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	requireAuth := middleware.AuthMiddleware(a.Tokens)

	api := a.Router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", a.UserHandler.Register)
		authGroup.POST("/login", a.UserHandler.Login)

		properties := api.Group("/properties")
		properties.GET("", a.PropertyHandler.GetProperties)
		properties.GET("/featured", a.PropertyHandler.GetFeatured)
		properties.GET("/:id", a.PropertyHandler.GetPropertyByID)
		properties.POST("", requireAuth, a.PropertyHandler.CreateProperty)
		properties.PUT("/:id", requireAuth, a.PropertyHandler.UpdateProperty)
		properties.DELETE("/:id", requireAuth, a.PropertyHandler.DeleteProperty)
		properties.POST("/:id/images", requireAuth, a.PropertyHandler.UploadImages)

		contacts := api.Group("/contacts")
		contacts.POST("", a.ContactHandler.CreateContact)
		contacts.GET("/property/:id/name", a.ContactHandler.GetPropertyName)
		contacts.GET("", requireAuth, a.ContactHandler.GetContacts)
		contacts.DELETE("/:id", requireAuth, a.ContactHandler.DeleteContact)
		contacts.PATCH("/:id/status", requireAuth, a.ContactHandler.UpdateContactStatus)
	}
}
