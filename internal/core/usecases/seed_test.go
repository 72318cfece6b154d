package usecases_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
)

func TestDefaultSeedSet_FiveFeatures(t *testing.T) {
	set, err := usecases.DefaultSeedSet()
	if err != nil {
		t.Fatalf("default seed: %v", err)
	}

	src := &domain.VectorSource{}
	if err := usecases.Seed(src, set); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if src.Len() != 5 {
		t.Fatalf("expected 5 features, got %d", src.Len())
	}

	features := src.Features()
	var points []orb.Point
	for _, f := range features[:4] {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			t.Fatalf("expected point geometry, got %T", f.Geometry)
		}
		points = append(points, p)
	}
	wantPoints := []orb.Point{{-50, 0}, {50, 0}, {-50, 50}, {50, 50}}
	if diff := cmp.Diff(wantPoints, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}

	rect := features[4]
	if rect.ID != "rect" {
		t.Errorf("expected rectangle id rect, got %q", rect.ID)
	}
	ls, ok := rect.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected line string, got %T", rect.Geometry)
	}
	wantRing := orb.LineString{{-50, 0}, {50, 0}, {50, 50}, {-50, 50}, {-50, 0}}
	if diff := cmp.Diff(wantRing, ls); diff != "" {
		t.Errorf("rectangle mismatch (-want +got):\n%s", diff)
	}
	if !domain.IsClosed(ls) {
		t.Error("rectangle ring is not closed")
	}
}

func TestParseSeedSet(t *testing.T) {
	set, err := usecases.ParseSeedSet([]byte(`
points:
  - {id: a, x: 1, y: 2}
rectangles:
  - {x: 0, y: 0, width: 10, height: 5}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := set.Features()
	if err != nil {
		t.Fatalf("features: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 features, got %d", len(got))
	}
	if got[0].ID != "a" || got[0].GeometryType() != domain.GeometryPoint {
		t.Errorf("unexpected first feature %+v", got[0])
	}
	if got[1].GeometryType() != domain.GeometryLineString {
		t.Errorf("expected line string, got %s", got[1].GeometryType())
	}
}

func TestParseSeedSet_Lines(t *testing.T) {
	set, err := usecases.ParseSeedSet([]byte(`
lines:
  - {id: path, coords: [[0, 0], [10, 5], [20, 0]]}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := set.Features()
	if err != nil {
		t.Fatalf("features: %v", err)
	}
	if len(got) != 1 || got[0].ID != "path" {
		t.Fatalf("unexpected features %+v", got)
	}
	ls, ok := got[0].Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("expected line string, got %T", got[0].Geometry)
	}
	want := orb.LineString{{0, 0}, {10, 5}, {20, 0}}
	if diff := cmp.Diff(want, ls); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}
}

func TestSeed_RejectsShortLine(t *testing.T) {
	set, err := usecases.ParseSeedSet([]byte(`
points:
  - {x: 1, y: 1}
lines:
  - {coords: [[0, 0]]}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	src := &domain.VectorSource{}
	if err := usecases.Seed(src, set); !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
	if src.Len() != 0 {
		t.Errorf("expected no features inserted, got %d", src.Len())
	}
}

func TestParseSeedSet_InvalidYAML(t *testing.T) {
	if _, err := usecases.ParseSeedSet([]byte("points: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestVectorSource_RejectsShortLineString(t *testing.T) {
	src := &domain.VectorSource{}
	err := src.Add(
		domain.Feature{Geometry: orb.Point{1, 1}},
		domain.Feature{Geometry: orb.LineString{{0, 0}}},
	)
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
	if src.Len() != 0 {
		t.Errorf("expected no features inserted, got %d", src.Len())
	}
}
