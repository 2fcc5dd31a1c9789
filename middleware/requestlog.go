package middleware

import (
	"time"

	"msc-booking/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per handled request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Printf("%s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
