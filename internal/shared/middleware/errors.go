package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/apperrors"
	"venuebook/internal/shared/utils/response"
	"venuebook/pkg/logger"
)

// ErrorHandler turns the last error recorded with c.Error into the response
// envelope. Internal error causes are only exposed when exposeInternal is set.
func ErrorHandler(log *logger.Logger, exposeInternal bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := apperrors.From(c.Errors.Last().Err)
		if appErr.Status >= http.StatusInternalServerError {
			log.LogHTTPError(c, c.Errors.Last().Err, appErr.Status)
		}

		if c.Writer.Written() {
			return
		}

		message := appErr.Message
		if appErr.Kind == apperrors.KindInternal && exposeInternal && appErr.Err != nil {
			message = appErr.Err.Error()
		}

		details := appErr.Details
		if details == nil && appErr.Kind != apperrors.KindInternal {
			details = gin.H{"kind": appErr.Kind}
		}

		response.AbortWithError(c, appErr.Status, message, details)
	}
}

// Recovery converts panics into an internal error envelope
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := fmt.Errorf("panic: %v", recovered)
		log.LogHTTPError(c, err, http.StatusInternalServerError)
		response.AbortWithError(c, http.StatusInternalServerError, "internal server error", nil)
	})
}
