package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/samirrijal/mapdemo/internal/adapters/http"
	"github.com/samirrijal/mapdemo/internal/adapters/memory"
	natsadapter "github.com/samirrijal/mapdemo/internal/adapters/nats"
	"github.com/samirrijal/mapdemo/internal/adapters/valkey"
	"github.com/samirrijal/mapdemo/internal/core/ports"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
	"github.com/samirrijal/mapdemo/internal/pkg/config"
	"github.com/samirrijal/mapdemo/internal/pkg/logging"
	"github.com/samirrijal/mapdemo/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("mapdemo-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{Version: version}

	// Cache (optional). Interfaces stay nil when the adapter is absent.
	var cache ports.CacheService
	if cfg.Valkey.Enabled {
		c, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.Prefix)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer c.Close()
			cache = c
			deps.Cache = c
		}
	}

	// NATS (optional)
	var publisher ports.EventPublisher
	if cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			publisher = pub
		}

		// Raw NATS connection for WebSocket relay
		nc, err := natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		} else {
			defer nc.Close()
			deps.NATS = nc
		}
	}

	mapOpts, err := usecases.DefaultMapOptions()
	if err != nil {
		log.Fatalf("map options: %v", err)
	}
	mapOpts.Basemap = cfg.Map.Basemap
	mapOpts.VectorVisible = cfg.Map.VectorVisible
	mapOpts.ScaleUnits = cfg.Map.ScaleUnits

	deps.Maps = usecases.NewMapService(memory.NewSessionRepo(), cache, publisher, mapOpts)
	deps.Sessions = session.New(session.Config{
		Expiration:     cfg.Session.IdleTimeout,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	// Idle session sweeper
	go sweepSessions(ctx, deps.Maps, cfg.Session.IdleTimeout, cfg.Session.SweepInterval)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024,
		AppName:      "mapdemo",
	})
	app.Use(recover.New())

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("map server starting", "addr", addr, "basemap", cfg.Map.Basemap)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// sweepSessions drops map screens nobody has touched for idle.
func sweepSessions(ctx context.Context, maps *usecases.MapService, idle, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := maps.Sweep(ctx, idle)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("idle sessions closed", "count", n)
			}
		}
	}
}
