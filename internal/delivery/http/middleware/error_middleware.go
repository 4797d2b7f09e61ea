package middleware

import (
	"errors"
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
// Internal details are logged, never sent.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("Request failed",
				"request_id", c.GetString(string(domain.KeyRequestID)),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"kind", appErr.Kind,
				"error", appErr.Err,
			)
		}

		message := appErr.Message
		if appErr.Kind == apperror.KindInternal {
			message = "An unexpected error occurred. Please try again later."
		}
		response.Error(c, appErr.Code, message, response.ErrorBody{
			Kind:    string(appErr.Kind),
			Details: appErr.Details,
		})
	}
}
