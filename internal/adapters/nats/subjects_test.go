package natsadapter

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

func TestSessionSubject(t *testing.T) {
	got := SessionSubject("abc", domain.EventInteractionChanged)
	if got != "mapdemo.session.abc.interaction.changed" {
		t.Errorf("unexpected subject %q", got)
	}
	if SessionWildcard("abc") != "mapdemo.session.abc.>" {
		t.Errorf("unexpected wildcard %q", SessionWildcard("abc"))
	}
}

func TestNewPublisher_ClosesConnOnStreamFailure(t *testing.T) {
	// Nothing listens here; the connection stays in its reconnect loop.
	conn, err := RawConn("nats://127.0.0.1:1")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := newPublisher(conn, nats.MaxWait(200*time.Millisecond)); err == nil {
		t.Fatal("expected stream setup to fail without a server")
	}
	if !conn.IsClosed() {
		conn.Close()
		t.Error("expected the connection to be closed after a failed setup")
	}
}
