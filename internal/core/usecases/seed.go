package usecases

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

//go:embed seed.yaml
var seedFixture []byte

// SeedPoint is a point feature in a seed set.
type SeedPoint struct {
	ID string  `yaml:"id,omitempty"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
}

// SeedRectangle is a closed rectangle outline in a seed set.
type SeedRectangle struct {
	ID     string  `yaml:"id,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SeedLine is an open polyline in a seed set, coordinates as [x, y] pairs.
type SeedLine struct {
	ID     string       `yaml:"id,omitempty"`
	Coords [][2]float64 `yaml:"coords"`
}

// SeedSet lists the features inserted into a new vector layer.
type SeedSet struct {
	Points     []SeedPoint     `yaml:"points"`
	Rectangles []SeedRectangle `yaml:"rectangles"`
	Lines      []SeedLine      `yaml:"lines,omitempty"`
}

// ParseSeedSet decodes a YAML seed set.
func ParseSeedSet(data []byte) (SeedSet, error) {
	var set SeedSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return SeedSet{}, fmt.Errorf("parse seed set: %w", err)
	}
	return set, nil
}

var defaultSeed = sync.OnceValues(func() (SeedSet, error) {
	return ParseSeedSet(seedFixture)
})

// DefaultSeedSet returns the built-in seed: four points and the "rect" outline.
func DefaultSeedSet() (SeedSet, error) {
	return defaultSeed()
}

// Features expands the set into features: points, then rectangles, then lines, each
// group in listed order. A line with fewer than two coordinates is rejected.
func (s SeedSet) Features() ([]domain.Feature, error) {
	out := make([]domain.Feature, 0, len(s.Points)+len(s.Rectangles)+len(s.Lines))
	for _, p := range s.Points {
		out = append(out, domain.Feature{ID: p.ID, Geometry: orb.Point{p.X, p.Y}})
	}
	for _, r := range s.Rectangles {
		out = append(out, domain.Feature{ID: r.ID, Geometry: domain.Rectangle(r.X, r.Y, r.Width, r.Height)})
	}
	for i, l := range s.Lines {
		coords := make([]orb.Point, len(l.Coords))
		for j, c := range l.Coords {
			coords[j] = orb.Point(c)
		}
		ls, err := domain.NewLineString(coords...)
		if err != nil {
			return nil, fmt.Errorf("seed line %d: %w", i, err)
		}
		out = append(out, domain.Feature{ID: l.ID, Geometry: ls})
	}
	return out, nil
}

// Seed bulk inserts the set into src, preserving order.
func Seed(src *domain.VectorSource, set SeedSet) error {
	features, err := set.Features()
	if err != nil {
		return fmt.Errorf("seed vector source: %w", err)
	}
	if err := src.Add(features...); err != nil {
		return fmt.Errorf("seed vector source: %w", err)
	}
	return nil
}
