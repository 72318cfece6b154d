package geospatial

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	earthRadiusMeters = 6378137.0
	tileSize          = 256.0
)

// ToLonLat converts a Web Mercator (EPSG:3857) coordinate to longitude/latitude (EPSG:4326).
func ToLonLat(p orb.Point) orb.Point {
	return project.Mercator.ToWGS84(p)
}

// FromLonLat converts longitude/latitude to Web Mercator.
func FromLonLat(p orb.Point) orb.Point {
	return project.WGS84.ToMercator(p)
}

// Resolution returns the ground distance in meters covered by one pixel at the given
// Web Mercator center and zoom. This is what a scale line measures.
func Resolution(center orb.Point, zoom float64) float64 {
	lat := ToLonLat(center).Lat()
	equator := 2 * math.Pi * earthRadiusMeters / (tileSize * math.Pow(2, zoom))
	return equator * math.Cos(toRad(lat))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
