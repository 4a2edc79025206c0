package pages

import (
	"context"
	"encoding/json"
	"fmt"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"hikelog/components"
	"hikelog/lib/metrics"
	"hikelog/lib/trails"
	"hikelog/utils"
)

// Trail renders one trail. The elevation profile is embedded as JSON for the chart script.
func Trail(ctx context.Context, t trails.Trail) g.Node {
	seconds, hasTime := trails.ParseEstimatedTime(t.EstimatedTime)

	profile, err := json.Marshal(t.ElevationProfile)
	if err != nil {
		return Error(ctx, fmt.Errorf("encode elevation profile: %w", err))
	}

	return components.Page(t.Trail, Div(
		components.NavBar(""),
		Div(Class("max-w-4xl mx-auto"),
			H1(g.Text(t.Trail)),
			P(Class("text-gray-400"), g.Text(t.Park)),
			Div(Class("flex flex-row gap-2 items-center"),
				components.DifficultyBadge(metrics.TrailDifficulty(t)),
				g.Map(t.Tags, func(tag string) g.Node {
					return Span(Class("bg-gray-800 text-xs px-2 py-1 rounded-md"), g.Text(tag))
				}),
			),
			Div(Class("grid grid-cols-2 md:grid-cols-4 gap-4 my-6"),
				components.StatCard("Length", components.Miles(t.Length), "📏"),
				components.StatCard("Elevation Gain", components.Feet(t.ElevationGain), "📈"),
				components.StatCard("Max Elevation", components.Feet(t.MaxElevation), "🏔️"),
				components.StatCard("Gain per Mile", components.Feet(int(metrics.GainPerMile(t)+0.5)), "⛰️"),
				g.If(hasTime, components.StatCard("Moving Time", metrics.FormatDuration(seconds), "⏱️")),
				g.If(hasTime && t.Length > 0, components.StatCard("Pace", fmt.Sprintf("%.0f min/mi", metrics.CalculatePace(t.Length, seconds)), "🥾")),
				g.If(t.When != "", components.StatCard("Completed", utils.IsoDate(t.When).FormattedString(), "📅")),
			),
			Div(ID("elevation-graph"),
				Canvas(ID("elevation-chart")),
			),
			A(Href("/static/trails/"+t.GPXFile), g.Text("Download track")),
		),
		Script(g.Attr("type", "application/json"), ID("profileData"), g.Raw(string(profile))),
		Script(Src("https://cdn.jsdelivr.net/npm/chart.js")),
		Script(Src("/static/profile.js")),
	))
}
