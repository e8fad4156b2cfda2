package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// ErrorHandler converts errors attached to the gin context into the API's
// single error shape: a status code plus {"error": message}.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Capture stack trace before Next() to preserve the full call stack
		stackTrace := debug.Stack()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		metadata := map[string]interface{}{
			"path":        c.Request.URL.Path,
			"method":      c.Request.Method,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"stack_trace": string(stackTrace),
		}

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			metadata["error_type"] = string(appError.Type)
			metadata["error_message"] = appError.Message
			if appError.Detail != "" {
				metadata["error_detail"] = appError.Detail
			}

			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			message := appError.Message
			if appError.Type == apperrors.ValidationError && appError.Detail != "" {
				message = appError.Detail
			}

			c.JSON(statusCode, types.ErrorResponse{Error: message})
			return
		}

		// Unknown error type, never leak internals to the client.
		log.Errorw("Unhandled error", "error", err, "metadata", metadata)
		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unhandled error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
	}
}
