//go:build integration

package natsadapter

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

func TestPublishAndSubscribeSession(t *testing.T) {
	url := os.Getenv("MAPDEMO_NATS_URL")
	if url == "" {
		url = "nats://localhost:4222"
	}
	pub, err := NewPublisher(url)
	if err != nil {
		t.Skipf("nats unavailable: %v", err)
	}
	defer pub.Close()

	nc, err := RawConn(url)
	if err != nil {
		t.Skipf("nats unavailable: %v", err)
	}
	defer nc.Close()

	got := make(chan *domain.MapEvent, 1)
	feed, err := SubscribeSession(nc, "s1", func(e *domain.MapEvent) { got <- e })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer feed.Close()
	if err := nc.Flush(); err != nil {
		t.Fatal(err)
	}

	sent := &domain.MapEvent{SessionID: "s1", Type: domain.EventInteractionChanged, Mode: domain.ModeDraw, At: time.Now()}
	if err := pub.PublishMapEvent(context.Background(), sent); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case e := <-got:
		if e.Type != domain.EventInteractionChanged || e.Mode != domain.ModeDraw {
			t.Errorf("unexpected event %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}
