package domain

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TileSource is a named raster basemap.
type TileSource struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// DefaultBasemap is the tile source used when none is configured.
const DefaultBasemap = "osm"

var basemaps = map[string]TileSource{
	"osm": {
		Name:        "osm",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
	},
	"osm-humanitarian": {
		Name:        "osm-humanitarian",
		URL:         "https://{a-c}.tile.openstreetmap.fr/hot/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors, Humanitarian OpenStreetMap Team",
	},
	"opentopomap": {
		Name:        "opentopomap",
		URL:         "https://{a-c}.tile.opentopomap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors, SRTM | © OpenTopoMap (CC-BY-SA)",
	},
}

// Basemap looks up a public basemap by name.
func Basemap(name string) (TileSource, error) {
	src, ok := basemaps[name]
	if !ok {
		return TileSource{}, fmt.Errorf("%w: %q", ErrUnknownBasemap, name)
	}
	return src, nil
}

// Basemaps returns every known basemap sorted by name.
func Basemaps() []TileSource {
	out := make([]TileSource, 0, len(basemaps))
	for _, src := range basemaps {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Feature is a geometry placed on a vector layer. ID is empty for anonymous features.
type Feature struct {
	ID       string       `json:"id,omitempty"`
	Geometry orb.Geometry `json:"-"`
}

// GeometryType reports the GeoJSON type of the feature's geometry.
func (f Feature) GeometryType() GeometryType {
	if f.Geometry == nil {
		return ""
	}
	return GeometryType(f.Geometry.GeoJSONType())
}

// VectorSource is the in-memory feature collection behind a vector layer.
type VectorSource struct {
	features []Feature
}

// Add appends features in order. Nothing is added if any feature is malformed.
func (s *VectorSource) Add(features ...Feature) error {
	for i, f := range features {
		if err := ValidateGeometry(f.Geometry); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
	}
	s.features = append(s.features, features...)
	return nil
}

// Len returns the number of features.
func (s *VectorSource) Len() int {
	return len(s.features)
}

// Features returns a copy of the features in insertion order.
func (s *VectorSource) Features() []Feature {
	out := make([]Feature, len(s.features))
	copy(out, s.features)
	return out
}

// FeatureCollection renders the source as GeoJSON.
func (s *VectorSource) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range s.features {
		gf := geojson.NewFeature(f.Geometry)
		if f.ID != "" {
			gf.ID = f.ID
			gf.Properties["name"] = f.ID
		}
		fc.Append(gf)
	}
	return fc
}
