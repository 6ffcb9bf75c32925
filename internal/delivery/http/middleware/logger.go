package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger - логирование запросов; запросы дольше slowThreshold пишутся как warn
func Logger(logger *zap.Logger, slowThreshold time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", latency),
			zap.String("ip", c.IP()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		if slowThreshold > 0 && latency > slowThreshold {
			logger.Warn("Slow request", fields...)
			return err
		}
		logger.Debug("Request", fields...)
		return err
	}
}
