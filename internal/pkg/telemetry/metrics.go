package telemetry

// Span and attribute names used for instrumentation.
const (
	TracerName = "github.com/samirrijal/mapdemo"

	// Spans
	SpanOpenSession   = "map.session.open"
	SpanCloseSession  = "map.session.close"
	SpanSetMode       = "map.interaction.set_mode"
	SpanToggleLayer   = "map.layer.toggle"
	SpanResetView     = "map.view.reset"
	SpanSetView       = "map.view.set"
	SpanFeatures      = "map.features.geojson"
	SpanSweepSessions = "map.session.sweep"

	// Attributes
	AttrSessionID   = "map.session_id"
	AttrMode        = "map.mode"
	AttrInteraction = "map.interaction_id"
	AttrLayer       = "map.layer"
	AttrCacheHit    = "map.cache_hit"
)
