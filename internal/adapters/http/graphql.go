package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/paulmach/orb"

	"github.com/samirrijal/mapdemo/internal/core/domain"
	"github.com/samirrijal/mapdemo/internal/core/usecases"
)

// pointField resolves an orb.Point field as [x, y].
func pointField(get func(p graphql.ResolveParams) (orb.Point, bool)) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(graphql.Float),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pt, ok := get(p)
			if !ok {
				return nil, nil
			}
			return []float64{pt[0], pt[1]}, nil
		},
	}
}

// buildSchema creates the GraphQL schema wired to the map service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	viewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "View",
		Fields: graphql.Fields{
			"center": pointField(func(p graphql.ResolveParams) (orb.Point, bool) {
				v, ok := p.Source.(domain.View)
				return v.Center, ok
			}),
			"zoom": &graphql.Field{Type: graphql.Float},
		},
	})

	tileSourceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TileSource",
		Fields: graphql.Fields{
			"name":        &graphql.Field{Type: graphql.String},
			"url":         &graphql.Field{Type: graphql.String},
			"attribution": &graphql.Field{Type: graphql.String},
		},
	})

	layerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Layer",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"kind":     &graphql.Field{Type: graphql.String},
			"visible":  &graphql.Field{Type: graphql.Boolean},
			"tile":     &graphql.Field{Type: tileSourceType},
			"features": &graphql.Field{Type: graphql.Int},
		},
	})

	controlsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Controls",
		Fields: graphql.Fields{
			"mouse_position": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name:   "MousePosition",
				Fields: graphql.Fields{"projection": &graphql.Field{Type: graphql.String}},
			})},
			"scale_line": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name:   "ScaleLine",
				Fields: graphql.Fields{"units": &graphql.Field{Type: graphql.String}},
			})},
		},
	})

	interactionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Interaction",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.String},
			"kind":      &graphql.Field{Type: graphql.String},
			"layer":     &graphql.Field{Type: graphql.String},
			"draw_type": &graphql.Field{Type: graphql.String},
		},
	})

	sessionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MapSession",
		Fields: graphql.Fields{
			"session_id": &graphql.Field{Type: graphql.String},
			"view":       &graphql.Field{Type: viewType},
			"center_lonlat": pointField(func(p graphql.ResolveParams) (orb.Point, bool) {
				s, ok := p.Source.(*usecases.MapState)
				if !ok || s == nil {
					return orb.Point{}, false
				}
				return s.CenterLonLat, true
			}),
			"resolution":   &graphql.Field{Type: graphql.Float},
			"layers":       &graphql.Field{Type: graphql.NewList(layerType)},
			"controls":     &graphql.Field{Type: controlsType},
			"mode":         &graphql.Field{Type: graphql.String},
			"mode_label":   &graphql.Field{Type: graphql.String},
			"interactions": &graphql.Field{Type: graphql.NewList(interactionType)},
			"created_at":   &graphql.Field{Type: graphql.DateTime},
			"updated_at":   &graphql.Field{Type: graphql.DateTime},
		},
	})

	noticeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Notice",
		Fields: graphql.Fields{
			"level":   &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	modeResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ModeResult",
		Fields: graphql.Fields{
			"state":  &graphql.Field{Type: sessionType},
			"notice": &graphql.Field{Type: noticeType},
		},
	})

	modeOptionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ModeOption",
		Fields: graphql.Fields{
			"value":   &graphql.Field{Type: graphql.String},
			"label":   &graphql.Field{Type: graphql.String},
			"default": &graphql.Field{Type: graphql.Boolean},
		},
	})

	sessionArg := graphql.FieldConfigArgument{
		"session": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"session": &graphql.Field{
				Type:        sessionType,
				Description: "Current state of a map session",
				Args:        sessionArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["session"].(string)
					return deps.Maps.Get(p.Context, id)
				},
			},
			"modes": &graphql.Field{
				Type:        graphql.NewList(modeOptionType),
				Description: "Interaction mode selector options in display order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return modeOptions(), nil
				},
			},
			"basemaps": &graphql.Field{
				Type:        graphql.NewList(tileSourceType),
				Description: "Known public basemaps",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return domain.Basemaps(), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"openSession": &graphql.Field{
				Type:        sessionType,
				Description: "Compose a new map screen",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Maps.Open(p.Context)
				},
			},
			"setMode": &graphql.Field{
				Type:        modeResultType,
				Description: "Switch the interaction mode by label or value",
				Args: graphql.FieldConfigArgument{
					"session": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"mode":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["session"].(string)
					mode, _ := p.Args["mode"].(string)
					state, notice, err := deps.Maps.SetMode(p.Context, id, mode)
					if err != nil {
						return nil, err
					}
					return &ModeResponse{State: state, Notice: notice}, nil
				},
			},
			"toggleVectorLayer": &graphql.Field{
				Type: sessionType,
				Args: sessionArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["session"].(string)
					return deps.Maps.ToggleVectorLayer(p.Context, id)
				},
			},
			"resetView": &graphql.Field{
				Type: sessionType,
				Args: sessionArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["session"].(string)
					return deps.Maps.ResetView(p.Context, id)
				},
			},
			"setView": &graphql.Field{
				Type: sessionType,
				Args: graphql.FieldConfigArgument{
					"session": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"x":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"y":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"zoom":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["session"].(string)
					x, _ := p.Args["x"].(float64)
					y, _ := p.Args["y"].(float64)
					zoom, _ := p.Args["zoom"].(float64)
					return deps.Maps.SetView(p.Context, id, domain.View{Center: orb.Point{x, y}, Zoom: zoom})
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// GraphQLHandler returns a Fiber handler that executes GraphQL queries.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
