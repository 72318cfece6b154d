package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/mapdemo/internal/pkg/metrics"
)

const requestTimeout = 5 * time.Second

// SetupRoutes registers the page, REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs
	app.Use(AccessLogMiddleware())

	// Rate limiting: UI clicks arrive in bursts, so the budget is higher than a read API's.
	app.Use(limiter.New(limiter.Config{
		Max:        600,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// Map screen
	app.Get("/", PageHandler(deps))

	// REST API v1
	v1 := app.Group("/v1")
	v1.Get("/modes", ListModesHandler())
	v1.Get("/basemaps", ListBasemapsHandler())
	v1.Post("/sessions", timeout.NewWithContext(OpenSessionHandler(deps), requestTimeout))
	v1.Get("/sessions/:id", timeout.NewWithContext(GetSessionHandler(deps), requestTimeout))
	v1.Delete("/sessions/:id", timeout.NewWithContext(CloseSessionHandler(deps), requestTimeout))
	v1.Post("/sessions/:id/vector/toggle", timeout.NewWithContext(ToggleVectorLayerHandler(deps), requestTimeout))
	v1.Post("/sessions/:id/view/reset", timeout.NewWithContext(ResetViewHandler(deps), requestTimeout))
	v1.Put("/sessions/:id/view", timeout.NewWithContext(SetViewHandler(deps), requestTimeout))
	v1.Put("/sessions/:id/mode", timeout.NewWithContext(SetModeHandler(deps), requestTimeout))
	v1.Get("/sessions/:id/features", timeout.NewWithContext(FeaturesHandler(deps), requestTimeout))
	v1.Get("/sessions/:id/features/list", timeout.NewWithContext(FeatureListHandler(deps), requestTimeout))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
