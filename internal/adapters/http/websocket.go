package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/paulmach/orb"

	natsadapter "github.com/samirrijal/mapdemo/internal/adapters/nats"
	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
	"github.com/samirrijal/mapdemo/internal/pkg/metrics"
)

// wsCommand is a UI event sent by the browser.
type wsCommand struct {
	Action string      `json:"action"` // "set_mode" | "toggle_vector" | "reset_view" | "set_view" | "get_state"
	Mode   string      `json:"mode,omitempty"`
	Center *[2]float64 `json:"center,omitempty"`
	Zoom   *float64    `json:"zoom,omitempty"`
}

// wsReply is sent to the browser after every command, and for relayed events.
type wsReply struct {
	Type   string             `json:"type"` // "state" | "event" | "error"
	State  *usecases.MapState `json:"state,omitempty"`
	Notice *domain.Notice     `json:"notice,omitempty"`
	Event  *domain.MapEvent   `json:"event,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// WebSocketHandler carries the UI events of one map session.
// Clients connect with ?session=<id> and send JSON commands such as
// {"action":"set_mode","mode":"draw mode"}; every command is answered with the full
// map state. When NATS is configured, changes made through other channels (REST,
// GraphQL, another tab) are relayed as {"type":"event"} messages.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		sessionID := c.Query("session")
		remoteAddr := c.RemoteAddr().String()
		logger := slog.Default().With("session_id", sessionID, "remote", remoteAddr)

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		ctx := context.Background()
		state, err := deps.Maps.Get(ctx, sessionID)
		if err != nil {
			_ = writeJSON(wsReply{Type: "error", Error: "session not found"})
			return
		}

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()
		logger.Info("ws client connected")

		if deps.NATS != nil {
			feed, err := natsadapter.SubscribeSession(deps.NATS, sessionID, func(e *domain.MapEvent) {
				_ = writeJSON(wsReply{Type: "event", Event: e})
			})
			if err != nil {
				logger.Warn("ws event relay unavailable", "error", err)
			} else {
				defer feed.Close()
			}
		}

		if err := writeJSON(wsReply{Type: "state", State: state}); err != nil {
			return
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()
		defer close(done)

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var cmd wsCommand
			if err := json.Unmarshal(msg, &cmd); err != nil {
				_ = writeJSON(wsReply{Type: "error", Error: "invalid JSON"})
				continue
			}

			reply := handleCommand(ctx, deps.Maps, sessionID, cmd)
			if err := writeJSON(reply); err != nil {
				break
			}
			if reply.Type == "error" && reply.Error == "session not found" {
				break
			}
		}

		logger.Info("ws client disconnected")
	}
}

func handleCommand(ctx context.Context, maps *usecases.MapService, sessionID string, cmd wsCommand) wsReply {
	var (
		state  *usecases.MapState
		notice *domain.Notice
		err    error
	)

	switch cmd.Action {
	case "get_state":
		state, err = maps.Get(ctx, sessionID)
	case "toggle_vector":
		state, err = maps.ToggleVectorLayer(ctx, sessionID)
	case "reset_view":
		state, err = maps.ResetView(ctx, sessionID)
	case "set_mode":
		state, notice, err = maps.SetMode(ctx, sessionID, cmd.Mode)
	case "set_view":
		if cmd.Center == nil || cmd.Zoom == nil {
			return wsReply{Type: "error", Error: "center and zoom are required"}
		}
		state, err = maps.SetView(ctx, sessionID, domain.View{Center: orb.Point(*cmd.Center), Zoom: *cmd.Zoom})
	default:
		return wsReply{Type: "error", Error: "unknown action: " + cmd.Action}
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return wsReply{Type: "error", Error: "session not found"}
	case err != nil:
		return wsReply{Type: "error", Error: err.Error()}
	}
	return wsReply{Type: "state", State: state, Notice: notice}
}
