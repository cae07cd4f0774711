package security

import "github.com/gofiber/fiber/v2"

// Headers sets the response headers a read-only JSON API should carry. The
// dashboard serves no HTML, so the policy locks everything down to self.
func Headers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("Referrer-Policy", "no-referrer")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Set("Cache-Control", "no-store")
		return c.Next()
	}
}
