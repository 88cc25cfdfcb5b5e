package middleware

import (
	"log/slog"
	"net/http"

	"booking-marketplace/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the envelope for handlers that recorded an error without responding.
// The newest public error wins; private errors never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		for i := len(c.Errors) - 1; i >= 0; i-- {
			ginErr := c.Errors[i]
			if !ginErr.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := ginErr.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		if status := c.Writer.Status(); status != http.StatusOK {
			c.JSON(status, httperr.NewResponse(c, status, httperr.CodeFor(status), http.StatusText(status), nil))
			return
		}
		slog.Error("unhandled handler error", "request_id", c.GetString(httperr.RequestIDKey), "errors", c.Errors.String())
		c.JSON(http.StatusInternalServerError, httperr.Internal(c))
	}
}

// CustomRecovery turns a panic into the internal error envelope instead of dropping the connection.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"error", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(httperr.RequestIDKey),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.Internal(c))
			}
		}()
		c.Next()
	}
}
