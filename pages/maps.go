package pages

import (
	"context"
	"fmt"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"hikelog/components"
	"hikelog/lib"
	"hikelog/lib/trails"
)

// MapPage draws every trail path on one map, filtered by park client side.
func MapPage(ctx context.Context, app *lib.App) g.Node {
	list, err := app.Dataset.GetTrails()
	if err != nil {
		return Error(ctx, err)
	}

	jsonData, err := trails.FeatureCollection(list).MarshalJSON()
	if err != nil {
		return Error(ctx, fmt.Errorf("encode trail map: %w", err))
	}

	return components.Page("Trail Map", g.Group([]g.Node{
		components.NavBar("/outdoor/map"),
		Div(ID("map-container"), Class("relative"),
			Div(ID("map"), Class("h-[70vh] rounded-md")),
			Div(ID("park-selector"), Class("absolute top-2 right-2 z-[1000]"),
				Select(ID("park-select"), Class(components.InputStyle+" bg-gray-900"),
					Option(Value(""), g.Text("All parks")),
					g.Map(parkNames(list), func(p string) g.Node {
						return Option(Value(p), g.Text(p))
					}),
				),
			),
		),
		Script(g.Attr("type", "application/json"), ID("jsonData"), g.Raw(string(jsonData))),
		Link(Rel("stylesheet"), Href("https://unpkg.com/leaflet@1.9.4/dist/leaflet.css")),
		Script(Src("https://unpkg.com/leaflet@1.9.4/dist/leaflet.js")),
		Script(Src("/static/map.js")),
	}))
}

func parkNames(list []trails.Trail) []string {
	var names []string
	seen := map[string]bool{}
	for _, t := range list {
		if !seen[t.Park] {
			seen[t.Park] = true
			names = append(names, t.Park)
		}
	}
	return names
}
