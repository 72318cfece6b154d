package http

import (
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
)

//go:embed templates/index.html
var indexTemplate string

// sessionKey is the cookie-session field holding the map session id.
const sessionKey = "map_session"

// PageHandler renders the map screen. The browser's cookie session is bound to one map
// session; a new map is composed on first visit or after the old one expired.
func PageHandler(deps *Dependencies) fiber.Handler {
	tpl := pongo2.Must(pongo2.FromString(indexTemplate))

	return func(c *fiber.Ctx) error {
		state, err := pageState(c, deps)
		if err != nil {
			return serviceError(c, err)
		}

		stateJSON, err := json.Marshal(state)
		if err != nil {
			return errInternal(c, "encode state")
		}

		out, err := tpl.Execute(pongo2.Context{
			"title":      "OpenLayers demo",
			"state":      state,
			"state_json": string(stateJSON),
			"modes":      modeOptions(),
			"layer":      domain.VectorLayerID,
		})
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("render page", "error", err)
			return errInternal(c, "render page")
		}

		c.Type("html", "utf-8")
		return c.SendString(out)
	}
}

func pageState(c *fiber.Ctx, deps *Dependencies) (*usecases.MapState, error) {
	ctx := c.UserContext()
	if deps.Sessions == nil {
		return deps.Maps.Open(ctx)
	}

	sess, err := deps.Sessions.Get(c)
	if err != nil {
		return nil, err
	}

	if id, ok := sess.Get(sessionKey).(string); ok && id != "" {
		state, err := deps.Maps.Get(ctx, id)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
	}

	state, err := deps.Maps.Open(ctx)
	if err != nil {
		return nil, err
	}
	sess.Set(sessionKey, state.SessionID)
	if err := sess.Save(); err != nil {
		return nil, err
	}
	return state, nil
}
