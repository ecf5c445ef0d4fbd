package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/schedule-intake-api/pkg/errors"
	"github.com/noah-isme/schedule-intake-api/pkg/response"
)

type hitCounter interface {
	Enabled() bool
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// SubmissionThrottle caps submissions per client IP within a fixed window. It fails open
// when the counter backend errors.
func SubmissionThrottle(counter hitCounter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if counter == nil || !counter.Enabled() || limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		count, err := counter.Hit(c.Request.Context(), ip, window)
		if err != nil {
			logger.Warn("submission throttle unavailable", zap.String("ip", ip), zap.Error(err))
			c.Next()
			return
		}
		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Abort(c, appErrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
