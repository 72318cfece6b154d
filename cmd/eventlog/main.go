package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	natsadapter "github.com/samirrijal/mapdemo/internal/adapters/nats"
	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/pkg/config"
	"github.com/samirrijal/mapdemo/internal/pkg/logging"
)

// eventlog tails the MAP_EVENTS stream and writes one structured log line per event,
// with a periodic summary of how many events of each type were seen.
func main() {
	cfg, err := config.Load("mapdemo-eventlog")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The publisher makes sure the stream exists before the consumer binds to it.
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer pub.Close()

	nc, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer nc.Drain()

	var (
		mu     sync.Mutex
		counts = make(map[domain.EventType]int)
	)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mu.Lock()
				if len(counts) > 0 {
					attrs := make([]any, 0, 2*len(counts))
					for t, n := range counts {
						attrs = append(attrs, string(t), n)
					}
					slog.Info("event summary", attrs...)
					counts = make(map[domain.EventType]int)
				}
				mu.Unlock()
			}
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	slog.Info("tailing map events", "stream", natsadapter.StreamName)
	err = natsadapter.TailEvents(ctx, nc, "mapdemo-eventlog", func(e *domain.MapEvent) error {
		mu.Lock()
		counts[e.Type]++
		mu.Unlock()

		attrs := []any{"session_id", e.SessionID, "type", string(e.Type), "at", e.At}
		if e.Mode != "" {
			attrs = append(attrs, "mode", string(e.Mode))
		}
		if e.Interaction != nil {
			attrs = append(attrs, "interaction", e.Interaction.ID, "kind", string(e.Interaction.Kind))
		}
		if e.Layer != "" {
			attrs = append(attrs, "layer", e.Layer)
		}
		if e.Visible != nil {
			attrs = append(attrs, "visible", *e.Visible)
		}
		if e.View != nil {
			attrs = append(attrs, "zoom", e.View.Zoom)
		}
		slog.Info("map event", attrs...)
		return nil
	})
	if err != nil {
		log.Fatalf("tail events: %v", err)
	}
	slog.Info("eventlog stopped")
}
