package domain

import "time"

// EventType classifies a map state change.
type EventType string

const (
	EventSessionOpened      EventType = "session.opened"
	EventSessionClosed      EventType = "session.closed"
	EventInteractionChanged EventType = "interaction.changed"
	EventLayerToggled       EventType = "layer.toggled"
	EventViewChanged        EventType = "view.changed"
	EventViewReset          EventType = "view.reset"
)

// MapEvent is broadcast after every state change of a session's map.
type MapEvent struct {
	SessionID   string       `json:"session_id"`
	Type        EventType    `json:"type"`
	Mode        Mode         `json:"mode,omitempty"`
	Interaction *Interaction `json:"interaction,omitempty"`
	Layer       string       `json:"layer,omitempty"`
	Visible     *bool        `json:"visible,omitempty"`
	View        *View        `json:"view,omitempty"`
	At          time.Time    `json:"at"`
}

// Notice is a non-fatal message shown to the user.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
