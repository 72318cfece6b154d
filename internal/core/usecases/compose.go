package usecases

import (
	"fmt"
	"time"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

// MapOptions configures the map built for each new session.
type MapOptions struct {
	Basemap       string
	VectorVisible bool
	ScaleUnits    string
	Seed          SeedSet
}

// DefaultMapOptions returns the demo screen: OSM basemap, hidden vector layer,
// metric scale line and the built-in seed.
func DefaultMapOptions() (MapOptions, error) {
	seed, err := DefaultSeedSet()
	if err != nil {
		return MapOptions{}, err
	}
	return MapOptions{
		Basemap:    domain.DefaultBasemap,
		ScaleUnits: "metric",
		Seed:       seed,
	}, nil
}

// Compose builds a map with the default view, a tile layer over the configured basemap,
// a seeded vector layer and a select interaction attached.
func Compose(sessionID string, opts MapOptions, now time.Time) (*domain.Map, error) {
	name := opts.Basemap
	if name == "" {
		name = domain.DefaultBasemap
	}
	basemap, err := domain.Basemap(name)
	if err != nil {
		return nil, err
	}

	src := &domain.VectorSource{}
	if err := Seed(src, opts.Seed); err != nil {
		return nil, err
	}

	vector := domain.NewVectorLayer(domain.VectorLayerID, src)
	vector.Visible = opts.VectorVisible

	units := opts.ScaleUnits
	if units == "" {
		units = "metric"
	}

	m := &domain.Map{
		SessionID: sessionID,
		View:      domain.DefaultView(),
		Base:      domain.NewTileLayer(domain.BaseLayerID, basemap),
		Vector:    vector,
		Controls: domain.Controls{
			MousePosition: &domain.MousePositionControl{Projection: domain.ProjectionWGS84},
			ScaleLine:     &domain.ScaleLineControl{Units: units},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := NewInteractionController(m).SetMode(domain.DefaultMode); err != nil {
		return nil, fmt.Errorf("initial interaction: %w", err)
	}
	return m, nil
}

// ToggleVectorLayer flips the vector layer's visibility and returns the new value.
func ToggleVectorLayer(m *domain.Map) bool {
	return m.Vector.ToggleVisible()
}

// ResetView restores the default center and zoom.
func ResetView(m *domain.Map) {
	m.View.Reset()
}
