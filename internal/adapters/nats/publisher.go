package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// StreamName is the JetStream stream holding map events.
const StreamName = "MAP_EVENTS"

// SessionSubject is the subject events of one session are published under.
// Use SessionWildcard to receive every event type of the session.
func SessionSubject(sessionID string, t domain.EventType) string {
	return "mapdemo.session." + sessionID + "." + string(t)
}

// SessionWildcard matches all event subjects of one session.
func SessionWildcard(sessionID string) string {
	return "mapdemo.session." + sessionID + ".>"
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return newPublisher(conn)
}

// newPublisher ensures the event stream on conn. conn is closed when that fails, since a
// connection created with RetryOnFailedConnect would otherwise keep reconnecting.
func newPublisher(conn *nats.Conn, opts ...nats.JSOpt) (*Publisher, error) {
	js, err := conn.JetStream(opts...)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{AllSessions},
		Retention: nats.LimitsPolicy,
		MaxAge:    1 * time.Hour,
		Storage:   nats.MemoryStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist; try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishMapEvent publishes event on its session subject.
func (p *Publisher) PublishMapEvent(ctx context.Context, event *domain.MapEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SessionSubject(event.SessionID, event.Type), data, nats.Context(ctx))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("mapdemo"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
