package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/samirrijal/mapdemo/internal/core/domain"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Mode
	}{
		{"select mode", domain.ModeSelect},
		{"edit mode", domain.ModeEdit},
		{"draw mode", domain.ModeDraw},
		{"draw", domain.ModeDraw},
		{"  edit mode ", domain.ModeEdit},
	}
	for _, tt := range tests {
		got, err := domain.ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "Draw Mode", "modify", "select mode!"} {
		if _, err := domain.ParseMode(bad); !errors.Is(err, domain.ErrUnknownMode) {
			t.Errorf("ParseMode(%q): expected ErrUnknownMode, got %v", bad, err)
		}
	}
}

func TestModes_SelectorOrder(t *testing.T) {
	var labels []string
	for _, m := range domain.Modes() {
		labels = append(labels, m.Label())
	}
	want := []string{"select mode", "edit mode", "draw mode"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d modes, got %d", len(want), len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("mode %d: got %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestMode_InteractionKind(t *testing.T) {
	if domain.ModeSelect.InteractionKind() != domain.InteractionSelect ||
		domain.ModeEdit.InteractionKind() != domain.InteractionModify ||
		domain.ModeDraw.InteractionKind() != domain.InteractionDraw {
		t.Error("mode to interaction mapping is wrong")
	}
}

func TestRectangle_Closed(t *testing.T) {
	ls := domain.Rectangle(-50, 0, 100, 50)
	if len(ls) != 5 {
		t.Fatalf("expected 5 coordinates, got %d", len(ls))
	}
	if !domain.IsClosed(ls) {
		t.Error("rectangle is not closed")
	}
	if ls[2] != (orb.Point{50, 50}) {
		t.Errorf("opposite corner: got %v", ls[2])
	}
}

func TestNewLineString(t *testing.T) {
	if _, err := domain.NewLineString(orb.Point{0, 0}); !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
	src := []orb.Point{{0, 0}, {1, 1}}
	ls, err := domain.NewLineString(src...)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = orb.Point{9, 9}
	if ls[0] != (orb.Point{0, 0}) {
		t.Error("line string shares storage with its input")
	}
}

func TestValidateGeometry(t *testing.T) {
	bad := []orb.Geometry{
		nil,
		orb.Point{math.NaN(), 0},
		orb.LineString{{0, 0}},
		orb.Polygon{},
	}
	for _, g := range bad {
		if err := domain.ValidateGeometry(g); !errors.Is(err, domain.ErrInvalidGeometry) {
			t.Errorf("ValidateGeometry(%v): expected ErrInvalidGeometry, got %v", g, err)
		}
	}
}

func TestView_ResetAndValidate(t *testing.T) {
	v := domain.View{Center: orb.Point{10, 20}, Zoom: 12}
	v.Reset()
	if v.Center != (orb.Point{0, 0}) || v.Zoom != 1 {
		t.Errorf("reset gave %+v", v)
	}
	if err := v.Validate(); err != nil {
		t.Errorf("default view invalid: %v", err)
	}
	for _, bad := range []domain.View{
		{Zoom: -1},
		{Zoom: 29},
		{Zoom: math.NaN()},
		{Center: orb.Point{math.Inf(1), 0}, Zoom: 3},
	} {
		if err := bad.Validate(); !errors.Is(err, domain.ErrInvalidView) {
			t.Errorf("Validate(%+v): expected ErrInvalidView, got %v", bad, err)
		}
	}
}

func TestLayer_ToggleVisible(t *testing.T) {
	l := domain.NewVectorLayer(domain.VectorLayerID, nil)
	if !l.Visible {
		t.Fatal("new layers start visible")
	}
	if l.ToggleVisible() || l.Visible {
		t.Error("first toggle should hide")
	}
	if !l.ToggleVisible() {
		t.Error("second toggle should show")
	}
}

func TestBasemap(t *testing.T) {
	src, err := domain.Basemap("osm")
	if err != nil || src.URL == "" {
		t.Fatalf("osm basemap: %+v, %v", src, err)
	}
	if _, err := domain.Basemap("mapquest"); !errors.Is(err, domain.ErrUnknownBasemap) {
		t.Errorf("expected ErrUnknownBasemap, got %v", err)
	}
	all := domain.Basemaps()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Errorf("basemaps not sorted: %s before %s", all[i-1].Name, all[i].Name)
		}
	}
}

func TestVectorSource_FeatureCollection(t *testing.T) {
	src := &domain.VectorSource{}
	_ = src.Add(
		domain.Feature{Geometry: orb.Point{1, 2}},
		domain.Feature{ID: "rect", Geometry: domain.Rectangle(0, 0, 1, 1)},
	)
	fc := src.FeatureCollection()
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	if fc.Features[0].ID != nil {
		t.Errorf("anonymous feature got id %v", fc.Features[0].ID)
	}
	if fc.Features[1].ID != "rect" || fc.Features[1].Properties["name"] != "rect" {
		t.Errorf("unexpected named feature %+v", fc.Features[1])
	}
}
