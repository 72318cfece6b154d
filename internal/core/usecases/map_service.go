package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/core/ports"
	"github.com/samirrijal/mapdemo/internal/pkg/geospatial"
	"github.com/samirrijal/mapdemo/internal/pkg/metrics"
	"github.com/samirrijal/mapdemo/internal/pkg/telemetry"
)

// featuresCacheTTL is how long a rendered GeoJSON payload stays cached.
const featuresCacheTTL = 300

// MaxModeLabelLen bounds the mode selector value accepted from any client.
const MaxModeLabelLen = 100

// LayerState is the client view of one layer.
type LayerState struct {
	ID       string             `json:"id"`
	Kind     domain.LayerKind   `json:"kind"`
	Visible  bool               `json:"visible"`
	Tile     *domain.TileSource `json:"tile,omitempty"`
	Features int                `json:"features,omitempty"`
}

// MapState is a snapshot of a session's map, safe to use after the session lock is released.
type MapState struct {
	SessionID    string               `json:"session_id"`
	View         domain.View          `json:"view"`
	CenterLonLat orb.Point            `json:"center_lonlat"`
	Resolution   float64              `json:"resolution"`
	Layers       []LayerState         `json:"layers"`
	Controls     domain.Controls      `json:"controls"`
	Mode         domain.Mode          `json:"mode"`
	ModeLabel    string               `json:"mode_label"`
	Interactions []domain.Interaction `json:"interactions"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// MapService runs the map screen of every session.
type MapService struct {
	sessions  ports.SessionRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
	opts      MapOptions
	now       func() time.Time
	newID     func() string
}

// NewMapService creates a new MapService. cache and publisher may be nil.
func NewMapService(
	sessions ports.SessionRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
	opts MapOptions,
) *MapService {
	return &MapService{
		sessions:  sessions,
		cache:     cache,
		publisher: publisher,
		opts:      opts,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Open composes a new map and registers it under a fresh session id.
func (s *MapService) Open(ctx context.Context) (*MapState, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanOpenSession)
	defer span.End()

	id := s.newID()
	now := s.now()
	m, err := Compose(id, s.opts, now)
	if err != nil {
		return nil, fmt.Errorf("compose map: %w", err)
	}
	sess := domain.NewSession(id, m, now)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	span.SetAttributes(attribute.String(telemetry.AttrSessionID, id))
	metrics.ActiveSessions.Inc()

	state := snapshot(m)
	s.publish(ctx, &domain.MapEvent{SessionID: id, Type: domain.EventSessionOpened, Mode: m.Mode, Interaction: m.Active, At: now})
	return state, nil
}

// Get returns the current state of a session.
func (s *MapService) Get(ctx context.Context, id string) (*MapState, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	sess.Touch(s.now())
	return snapshot(sess.Map), nil
}

// Close discards a session.
func (s *MapService) Close(ctx context.Context, id string) error {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanCloseSession,
		trace.WithAttributes(attribute.String(telemetry.AttrSessionID, id)))
	defer span.End()

	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.closed(ctx, id)
	return nil
}

// closed releases what a removed session held and announces it.
func (s *MapService) closed(ctx context.Context, id string) {
	metrics.ActiveSessions.Dec()
	s.dropCache(ctx, id)
	s.publish(ctx, &domain.MapEvent{SessionID: id, Type: domain.EventSessionClosed, At: s.now()})
}

// ToggleVectorLayer flips the vector layer's visibility.
func (s *MapService) ToggleVectorLayer(ctx context.Context, id string) (*MapState, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanToggleLayer,
		trace.WithAttributes(
			attribute.String(telemetry.AttrSessionID, id),
			attribute.String(telemetry.AttrLayer, domain.VectorLayerID),
		))
	defer span.End()

	var visible bool
	state, err := s.mutate(ctx, id, func(m *domain.Map) error {
		visible = ToggleVectorLayer(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.LayerToggles.WithLabelValues(domain.VectorLayerID).Inc()
	s.publish(ctx, &domain.MapEvent{SessionID: id, Type: domain.EventLayerToggled, Layer: domain.VectorLayerID, Visible: &visible, At: state.UpdatedAt})
	return state, nil
}

// ResetView restores center (0,0) and zoom 1.
func (s *MapService) ResetView(ctx context.Context, id string) (*MapState, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanResetView,
		trace.WithAttributes(attribute.String(telemetry.AttrSessionID, id)))
	defer span.End()

	state, err := s.mutate(ctx, id, func(m *domain.Map) error {
		ResetView(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ViewResets.Inc()
	view := state.View
	s.publish(ctx, &domain.MapEvent{SessionID: id, Type: domain.EventViewReset, View: &view, At: state.UpdatedAt})
	return state, nil
}

// SetView records a pan or zoom reported by the client.
func (s *MapService) SetView(ctx context.Context, id string, view domain.View) (*MapState, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSetView,
		trace.WithAttributes(attribute.String(telemetry.AttrSessionID, id)))
	defer span.End()

	if err := view.Validate(); err != nil {
		return nil, err
	}
	state, err := s.mutate(ctx, id, func(m *domain.Map) error {
		m.View = view
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, &domain.MapEvent{SessionID: id, Type: domain.EventViewChanged, View: &view, At: state.UpdatedAt})
	return state, nil
}

// SetMode applies a mode selector value. An unrecognised value returns the unchanged
// state together with a notice; it is not an error.
func (s *MapService) SetMode(ctx context.Context, id, label string) (*MapState, *domain.Notice, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSetMode,
		trace.WithAttributes(
			attribute.String(telemetry.AttrSessionID, id),
		))
	defer span.End()

	if len(label) > MaxModeLabelLen {
		return nil, nil, fmt.Errorf("%w: label longer than %d characters", domain.ErrUnknownMode, MaxModeLabelLen)
	}

	span.SetAttributes(attribute.String(telemetry.AttrMode, label))

	var (
		notice *domain.Notice
		active *domain.Interaction
	)
	state, err := s.mutate(ctx, id, func(m *domain.Map) error {
		active, notice = NewInteractionController(m).SetModeLabel(label)
		if notice != nil {
			return errNoChange
		}
		return nil
	})
	if errors.Is(err, errNoChange) {
		metrics.UnknownModeNotices.Inc()
		slog.WarnContext(ctx, "unknown interaction mode", "session_id", id, "mode", label)
		state, err = s.Get(ctx, id)
		return state, notice, err
	}
	if err != nil {
		return nil, nil, err
	}

	span.SetAttributes(attribute.String(telemetry.AttrInteraction, active.ID))
	metrics.ModeChanges.WithLabelValues(string(state.Mode)).Inc()
	s.publish(ctx, &domain.MapEvent{SessionID: id, Type: domain.EventInteractionChanged, Mode: state.Mode, Interaction: active, At: state.UpdatedAt})
	return state, nil, nil
}

// Features returns the session's vector features in insertion order.
func (s *MapService) Features(ctx context.Context, id string) ([]domain.Feature, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return sess.Map.Vector.Vector.Features(), nil
}

// FeaturesGeoJSON renders the session's vector source as a GeoJSON FeatureCollection.
func (s *MapService) FeaturesGeoJSON(ctx context.Context, id string) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanFeatures,
		trace.WithAttributes(attribute.String(telemetry.AttrSessionID, id)))
	defer span.End()

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Try cache
	cacheKey := featuresCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			metrics.CacheHits.WithLabelValues("features").Inc()
			span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, true))
			return data, nil
		}
		metrics.CacheMisses.WithLabelValues("features").Inc()
	}

	sess.Lock()
	fc := sess.Map.Vector.Vector.FeatureCollection()
	sess.Unlock()

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, data, featuresCacheTTL)
	}
	return data, nil
}

// Sweep closes sessions idle for longer than idle and returns how many were removed.
func (s *MapService) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSweepSessions)
	defer span.End()

	cutoff := s.now().Add(-idle)
	ids, err := s.sessions.IdleSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, id := range ids {
		// the scan is a snapshot; the session may have been used since
		ok, err := s.sessions.DeleteIdle(ctx, id, cutoff)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		s.closed(ctx, id)
		removed++
	}
	if removed > 0 {
		metrics.SessionsExpired.Add(float64(removed))
		slog.InfoContext(ctx, "idle sessions removed", "count", removed)
	}
	return removed, nil
}

// Count returns the number of live sessions.
func (s *MapService) Count(ctx context.Context) (int, error) {
	return s.sessions.Count(ctx)
}

var errNoChange = errors.New("no change")

// mutate runs fn on the session's map under the session lock and returns the new state.
func (s *MapService) mutate(ctx context.Context, id string, fn func(m *domain.Map) error) (*MapState, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()

	now := s.now()
	sess.Touch(now)
	if err := fn(sess.Map); err != nil {
		return nil, err
	}
	sess.Map.UpdatedAt = now
	return snapshot(sess.Map), nil
}

func (s *MapService) publish(ctx context.Context, event *domain.MapEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMapEvent(ctx, event); err != nil {
		slog.DebugContext(ctx, "publish map event", "type", event.Type, "error", err)
	}
}

func (s *MapService) dropCache(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, featuresCacheKey(id))
	}
}

func featuresCacheKey(id string) string {
	return "mapdemo:features:" + id
}

func snapshot(m *domain.Map) *MapState {
	layers := make([]LayerState, 0, 2)
	for _, l := range m.Layers() {
		ls := LayerState{ID: l.ID, Kind: l.Kind, Visible: l.Visible}
		if l.Tile != nil {
			src := *l.Tile
			ls.Tile = &src
		}
		if l.Vector != nil {
			ls.Features = l.Vector.Len()
		}
		layers = append(layers, ls)
	}

	return &MapState{
		SessionID:    m.SessionID,
		View:         m.View,
		CenterLonLat: geospatial.ToLonLat(m.View.Center),
		Resolution:   geospatial.Resolution(m.View.Center, m.View.Zoom),
		Layers:       layers,
		Controls:     m.Controls,
		Mode:         m.Mode,
		ModeLabel:    m.Mode.Label(),
		Interactions: NewInteractionController(m).Interactions(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
