package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// SessionFeed delivers the events of one session to a callback.
type SessionFeed struct {
	sub *nats.Subscription
}

// SubscribeSession relays every event published for sessionID to handler.
// Malformed messages are dropped.
func SubscribeSession(nc *nats.Conn, sessionID string, handler func(event *domain.MapEvent)) (*SessionFeed, error) {
	sub, err := nc.Subscribe(SessionWildcard(sessionID), func(msg *nats.Msg) {
		var event domain.MapEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return
		}
		handler(&event)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe session %s: %w", sessionID, err)
	}
	return &SessionFeed{sub: sub}, nil
}

// Close unsubscribes.
func (f *SessionFeed) Close() {
	_ = f.sub.Unsubscribe()
}

// AllSessions matches the events of every session.
const AllSessions = "mapdemo.session.>"

// TailEvents consumes the map event stream through a durable JetStream consumer until ctx
// is done. Each message is acknowledged after handler returns; a handler error or a
// malformed payload terminates that message instead of redelivering it.
func TailEvents(ctx context.Context, nc *nats.Conn, durable string, handler func(event *domain.MapEvent) error) error {
	js, err := nc.JetStream()
	if err != nil {
		return fmt.Errorf("jetstream: %w", err)
	}

	sub, err := js.Subscribe(AllSessions, func(msg *nats.Msg) {
		var event domain.MapEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(&event); err != nil {
			_ = msg.Term()
			return
		}
		_ = msg.Ack()
	},
		nats.BindStream(StreamName),
		nats.Durable(durable),
		nats.ManualAck(),
		nats.DeliverNew(),
	)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", StreamName, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	<-ctx.Done()
	return nil
}
