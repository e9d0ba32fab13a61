package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows every origin outside production and only allowedOrigins in it.
func CORS(production bool, allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if production {
		corsConfig.AllowAllOrigins = false
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With", HeaderRequestID}
	corsConfig.ExposeHeaders = []string{"Content-Length", HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}
