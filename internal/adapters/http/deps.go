package http

import (
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/mapdemo/internal/adapters/valkey"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// Sessions, NATS and Cache are optional.
type Dependencies struct {
	Maps     *usecases.MapService
	Sessions *session.Store
	NATS     *nats.Conn
	Cache    *valkey.Cache
	Version  string
}
