package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// NoStore disables HTTP caching on routes whose responses carry derived loan
// amounts. Those figures depend on the clock, so yesterday's body is wrong
// today; clients and proxies must always revalidate.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		c.Set("Cache-Control", "no-store")
		return err
	}
}
