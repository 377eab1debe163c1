package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kipharma/pharmacy-platform/public-gateway/config"
	"github.com/kipharma/pharmacy-platform/public-gateway/health"
	"github.com/kipharma/pharmacy-platform/public-gateway/proxy"
)

// SetupRoutes configures all routes in the gateway. Only the API's
// public surface is exposed; everything else 404s at the edge.
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		upstream := healthChecker.CheckUpstream(ctx)

		statusCode := fiber.StatusOK
		if upstream.Status != "healthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(upstream)
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Kipharma public gateway",
			"version": "1.0.0",
		})
	})

	handler := func(c *fiber.Ctx) error {
		return reverseProxy.ProxyRequest(c)
	}

	app.Get("/api/public", handler)
	app.Get("/api/public/*", handler)
}
