package usecases

import (
	"fmt"
	"html"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

var noticePolicy = bluemonday.StrictPolicy()

// InteractionController keeps the interaction attached to a map in step with the
// selected mode. The map holds a single interaction slot, so replacing it is the
// whole of "clear, then add one".
type InteractionController struct {
	m     *domain.Map
	newID func() string
}

// NewInteractionController creates a controller over m.
func NewInteractionController(m *domain.Map) *InteractionController {
	return &InteractionController{m: m, newID: uuid.NewString}
}

// SetMode detaches the current interaction and attaches a new one built for mode.
// Calling it twice with the same mode replaces the instance.
func (c *InteractionController) SetMode(mode domain.Mode) (*domain.Interaction, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	c.m.Active = nil
	next := c.build(mode)
	c.m.Active = next
	c.m.Mode = mode
	return next, nil
}

// SetModeLabel applies a selector value. An unrecognised value leaves the map as it
// was and returns a notice for the user instead of an error.
func (c *InteractionController) SetModeLabel(label string) (*domain.Interaction, *domain.Notice) {
	mode, err := domain.ParseMode(label)
	if err != nil {
		return c.m.Active, UnknownModeNotice(label)
	}
	in, _ := c.SetMode(mode)
	return in, nil
}

// Mode returns the last selected mode.
func (c *InteractionController) Mode() domain.Mode {
	return c.m.Mode
}

// Active returns the attached interaction, or nil when none is attached.
func (c *InteractionController) Active() *domain.Interaction {
	return c.m.Active
}

// Interactions returns the attached interactions as a list of zero or one element.
func (c *InteractionController) Interactions() []domain.Interaction {
	if c.m.Active == nil {
		return []domain.Interaction{}
	}
	return []domain.Interaction{*c.m.Active}
}

func (c *InteractionController) build(mode domain.Mode) *domain.Interaction {
	in := &domain.Interaction{ID: c.newID(), Kind: mode.InteractionKind()}
	switch mode {
	case domain.ModeEdit:
		in.Layer = c.vectorLayerID()
	case domain.ModeDraw:
		in.Layer = c.vectorLayerID()
		in.DrawType = domain.GeometryLineString
	}
	return in
}

func (c *InteractionController) vectorLayerID() string {
	if c.m.Vector != nil {
		return c.m.Vector.ID
	}
	return domain.VectorLayerID
}

// UnknownModeNotice builds the user-visible warning for an unrecognised mode value.
// Markup is stripped from the label; the message itself is plain text, not HTML.
func UnknownModeNotice(label string) *domain.Notice {
	return &domain.Notice{
		Level:   "warning",
		Message: html.UnescapeString(noticePolicy.Sanitize("Unknown interaction mode : " + label)),
	}
}
