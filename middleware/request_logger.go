// middleware/request_logger.go
package middleware

import (
	"time"

	"darkzone-stats-server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request.
func RequestLogger() fiber.Handler {
	logger := utils.Logger.WithFields(logrus.Fields{
		"module": "middleware.RequestLogger",
	})

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if ferr, ok := err.(*fiber.Error); ok {
				status = ferr.Code
			}
		}

		logger.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   status,
			"duration": time.Since(start).String(),
		}).Info("request")

		return err
	}
}
