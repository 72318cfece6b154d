package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// GeometryType names the geometry kinds a vector layer holds or a draw interaction produces.
type GeometryType string

const (
	GeometryPoint      GeometryType = "Point"
	GeometryLineString GeometryType = "LineString"
)

// Projections understood by the map controls.
const (
	ProjectionWGS84       = "EPSG:4326"
	ProjectionWebMercator = "EPSG:3857"
)

// NewLineString copies coords into a line string. At least two coordinates are required.
func NewLineString(coords ...orb.Point) (orb.LineString, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("%w: line string needs at least 2 coordinates, got %d", ErrInvalidGeometry, len(coords))
	}
	ls := make(orb.LineString, len(coords))
	copy(ls, coords)
	return ls, nil
}

// Rectangle returns the outline of the axis-aligned rectangle whose first corner is (x, y).
// The first corner is repeated as the last coordinate so the ring is closed.
func Rectangle(x, y, width, height float64) orb.LineString {
	return orb.LineString{
		{x, y},
		{x + width, y},
		{x + width, y + height},
		{x, y + height},
		{x, y},
	}
}

// IsClosed reports whether ls starts and ends on the same coordinate.
func IsClosed(ls orb.LineString) bool {
	return len(ls) >= 2 && ls[0].Equal(ls[len(ls)-1])
}

// ValidateGeometry checks the structural well-formedness of a feature geometry.
func ValidateGeometry(g orb.Geometry) error {
	switch geom := g.(type) {
	case orb.Point:
		if !finite(geom) {
			return fmt.Errorf("%w: point has non-finite coordinate", ErrInvalidGeometry)
		}
	case orb.LineString:
		if len(geom) < 2 {
			return fmt.Errorf("%w: line string needs at least 2 coordinates, got %d", ErrInvalidGeometry, len(geom))
		}
		for _, p := range geom {
			if !finite(p) {
				return fmt.Errorf("%w: line string has non-finite coordinate", ErrInvalidGeometry)
			}
		}
	case nil:
		return fmt.Errorf("%w: missing geometry", ErrInvalidGeometry)
	default:
		return fmt.Errorf("%w: unsupported geometry %s", ErrInvalidGeometry, g.GeoJSONType())
	}
	return nil
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}
