package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/thelivecure/admin-api/pkg/httputil"
)

// RateLimit applies a global token bucket across all clients. rps is the
// sustained rate, burst the bucket size.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}
