package main

import (
	"homefinder-listings/internal/middleware"

	"github.com/gin-gonic/gin"
)

// configure all middleware for the router
func (a *App) setupMiddleware() {
	production := a.Config.IsProduction()

	a.Router.Use(middleware.CORS(production, a.Config.Server.AllowedOrigins))
	a.Router.Use(middleware.MetricsMiddleware())
	a.Router.Use(middleware.LoggingMiddleware())
	a.Router.Use(middleware.SecureHeaders(production))
	a.Router.Use(middleware.ErrorHandler())
	a.Router.Use(middleware.RateLimitMiddleware(a.RateLimiter))
	a.Router.Use(gin.Recovery())
}
