package domain

import (
	"fmt"
	"strings"
)

// Mode is the interaction mode offered by the mode selector.
type Mode string

const (
	ModeSelect Mode = "select"
	ModeEdit   Mode = "edit"
	ModeDraw   Mode = "draw"
)

// DefaultMode is the selector value a new map starts in.
const DefaultMode = ModeSelect

var modeLabels = map[Mode]string{
	ModeSelect: "select mode",
	ModeEdit:   "edit mode",
	ModeDraw:   "draw mode",
}

// Modes returns the selectable modes in selector order.
func Modes() []Mode {
	return []Mode{ModeSelect, ModeEdit, ModeDraw}
}

// Label is the text shown for m in the selector.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return string(m)
}

// Valid reports whether m is one of the selectable modes.
func (m Mode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

// ParseMode accepts either a selector label ("draw mode") or the bare mode ("draw").
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for m, label := range modeLabels {
		if s == label || s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// InteractionKind identifies the interaction implementation attached to a map.
type InteractionKind string

const (
	InteractionSelect InteractionKind = "select"
	InteractionModify InteractionKind = "modify"
	InteractionDraw   InteractionKind = "draw"
)

// InteractionKind maps a mode to the interaction it installs.
func (m Mode) InteractionKind() InteractionKind {
	switch m {
	case ModeEdit:
		return InteractionModify
	case ModeDraw:
		return InteractionDraw
	default:
		return InteractionSelect
	}
}

// Interaction is one attached input handler. Layer is empty for select, which works on
// every layer.
type Interaction struct {
	ID       string          `json:"id"`
	Kind     InteractionKind `json:"kind"`
	Layer    string          `json:"layer,omitempty"`
	DrawType GeometryType    `json:"draw_type,omitempty"`
}
