package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
)

// Zoom limits accepted by SetView.
const (
	MinZoom     = 0
	MaxZoom     = 28
	DefaultZoom = 1
)

// View is the visible part of the map.
type View struct {
	Center orb.Point `json:"center"`
	Zoom   float64   `json:"zoom"`
}

// DefaultView returns center (0,0) at zoom 1.
func DefaultView() View {
	return View{Center: orb.Point{0, 0}, Zoom: DefaultZoom}
}

// Reset restores the default center and zoom.
func (v *View) Reset() {
	*v = DefaultView()
}

// Validate checks that the center is finite and the zoom is within range.
func (v View) Validate() error {
	if !finite(v.Center) {
		return fmt.Errorf("%w: center must be finite", ErrInvalidView)
	}
	if math.IsNaN(v.Zoom) || v.Zoom < MinZoom || v.Zoom > MaxZoom {
		return fmt.Errorf("%w: zoom must be between %d and %d, got %v", ErrInvalidView, MinZoom, MaxZoom, v.Zoom)
	}
	return nil
}

// LayerKind distinguishes raster tile layers from vector layers.
type LayerKind string

const (
	LayerTile   LayerKind = "tile"
	LayerVector LayerKind = "vector"
)

// Layer IDs used by the demo screen.
const (
	BaseLayerID   = "base"
	VectorLayerID = "vector"
)

// Layer is one map layer. Exactly one of Tile or Vector is set, matching Kind.
type Layer struct {
	ID      string        `json:"id"`
	Kind    LayerKind     `json:"kind"`
	Visible bool          `json:"visible"`
	Tile    *TileSource   `json:"tile,omitempty"`
	Vector  *VectorSource `json:"-"`
}

// NewTileLayer wraps a raster source in a visible layer.
func NewTileLayer(id string, src TileSource) *Layer {
	return &Layer{ID: id, Kind: LayerTile, Visible: true, Tile: &src}
}

// NewVectorLayer wraps a feature source in a visible layer.
func NewVectorLayer(id string, src *VectorSource) *Layer {
	if src == nil {
		src = &VectorSource{}
	}
	return &Layer{ID: id, Kind: LayerVector, Visible: true, Vector: src}
}

// ToggleVisible flips the visibility flag and returns the new value.
func (l *Layer) ToggleVisible() bool {
	l.Visible = !l.Visible
	return l.Visible
}

// Controls are the map overlays shown alongside the layers.
type Controls struct {
	MousePosition *MousePositionControl `json:"mouse_position,omitempty"`
	ScaleLine     *ScaleLineControl     `json:"scale_line,omitempty"`
}

// MousePositionControl shows the pointer coordinate in Projection.
type MousePositionControl struct {
	Projection string `json:"projection"`
}

// ScaleLineControl draws a scale bar in Units ("metric", "imperial", "nautical").
type ScaleLineControl struct {
	Units string `json:"units"`
}

// Map is the view model of one map screen.
type Map struct {
	SessionID string
	View      View
	Base      *Layer
	Vector    *Layer
	Controls  Controls
	Mode      Mode
	Active    *Interaction
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Layers returns the layers in render order, base first.
func (m *Map) Layers() []*Layer {
	layers := make([]*Layer, 0, 2)
	if m.Base != nil {
		layers = append(layers, m.Base)
	}
	if m.Vector != nil {
		layers = append(layers, m.Vector)
	}
	return layers
}
