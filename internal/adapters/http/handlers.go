package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb"

	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
)

// ModeOption is one entry of the interaction-mode selector.
type ModeOption struct {
	Value   domain.Mode `json:"value"`
	Label   string      `json:"label"`
	Default bool        `json:"default"`
}

// ModeResponse is returned by mode changes. Notice is set when the mode was not recognised.
type ModeResponse struct {
	State  *usecases.MapState `json:"state"`
	Notice *domain.Notice     `json:"notice,omitempty"`
}

// FeatureSummary is one row of the paginated feature list.
type FeatureSummary struct {
	ID          string              `json:"id,omitempty"`
	Type        domain.GeometryType `json:"type"`
	Coordinates []orb.Point         `json:"coordinates"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

type setViewRequest struct {
	Center *[2]float64 `json:"center"`
	Zoom   *float64    `json:"zoom"`
}

func modeOptions() []ModeOption {
	modes := domain.Modes()
	out := make([]ModeOption, 0, len(modes))
	for _, m := range modes {
		out = append(out, ModeOption{Value: m, Label: m.Label(), Default: m == domain.DefaultMode})
	}
	return out
}

// ListModesHandler returns the selector options in display order.
func ListModesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(modeOptions())
	}
}

// ListBasemapsHandler returns the known public basemaps.
func ListBasemapsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(domain.Basemaps())
	}
}

// OpenSessionHandler composes a new map and returns its state.
func OpenSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := deps.Maps.Open(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		c.Location("/v1/sessions/" + state.SessionID)
		return c.Status(fiber.StatusCreated).JSON(state)
	}
}

// GetSessionHandler returns the current state of a session.
func GetSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := deps.Maps.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(state)
	}
}

// CloseSessionHandler discards a session.
func CloseSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Maps.Close(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ToggleVectorLayerHandler handles the "toggle vector layer" button.
func ToggleVectorLayerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := deps.Maps.ToggleVectorLayer(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(state)
	}
}

// ResetViewHandler handles the "reset view" button.
func ResetViewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := deps.Maps.ResetView(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(state)
	}
}

// SetViewHandler records a pan or zoom made in the browser.
func SetViewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req setViewRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Center == nil || req.Zoom == nil {
			return errBadRequest(c, "center and zoom are required")
		}
		view := domain.View{Center: orb.Point(*req.Center), Zoom: *req.Zoom}
		state, err := deps.Maps.SetView(c.UserContext(), c.Params("id"), view)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(state)
	}
}

// SetModeHandler handles a change of the interaction-mode selector.
func SetModeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req setModeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Mode == "" {
			return errBadRequest(c, "mode is required")
		}
		state, notice, err := deps.Maps.SetMode(c.UserContext(), c.Params("id"), req.Mode)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(ModeResponse{State: state, Notice: notice})
	}
}

// FeaturesHandler returns the vector layer's features as a GeoJSON FeatureCollection.
func FeaturesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := deps.Maps.FeaturesGeoJSON(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(data)
	}
}

// FeatureListHandler returns the vector layer's features as a paginated list.
func FeatureListHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		features, err := deps.Maps.Features(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}

		offset, limit := pageParams(c)
		page, pg := paginate(features, offset, limit)

		rows := make([]FeatureSummary, 0, len(page))
		for _, f := range page {
			rows = append(rows, summarize(f))
		}

		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: rows, Pagination: pg})
	}
}

func summarize(f domain.Feature) FeatureSummary {
	s := FeatureSummary{ID: f.ID, Type: f.GeometryType()}
	switch g := f.Geometry.(type) {
	case orb.Point:
		s.Coordinates = []orb.Point{g}
	case orb.LineString:
		s.Coordinates = append([]orb.Point(nil), g...)
	}
	return s
}
