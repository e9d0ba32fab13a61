package middleware

import (
	"homefinder-listings/internal/errors"
	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error recorded by a handler into the
// {success:false, error, code} envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := errors.MapError(err)

		logFn := logger.GlobalLogger.Debugf
		if appErr.HTTPStatus >= 500 {
			logFn = logger.GlobalLogger.Errorf
		}
		logFn("Request failed: path=%s, method=%s, client_ip=%s, request_id=%s, status=%d, error=%s",
			c.Request.URL.Path,
			c.Request.Method,
			c.ClientIP(),
			c.GetString(ContextRequestID),
			appErr.HTTPStatus,
			appErr.TechnicalMessage)

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.HTTPStatus, models.Failure(appErr.UserMessage, appErr.Code))
	}
}
