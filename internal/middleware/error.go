package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/thelivecure/admin-api/pkg/errors"
	"github.com/thelivecure/admin-api/pkg/httputil"
)

// ErrorHandler renders errors attached to the gin context via c.Error.
// Handlers that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.StatusCode() >= 500 {
			log.Error().
				Err(err).
				Str("requestId", GetRequestID(c)).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}
		httputil.Error(c, err)
		c.Abort()
	}
}
