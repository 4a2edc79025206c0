package pages

import (
	"context"
	"fmt"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"hikelog/components"
	"hikelog/lib"
	"hikelog/lib/metrics"
	"hikelog/lib/seasons"
	"hikelog/lib/trails"
)

func Outdoor(ctx context.Context, app *lib.App) g.Node {
	list, err := app.Dataset.GetTrails()
	if err != nil {
		return Error(ctx, err)
	}

	stats := metrics.CalculateAggregatedStats(list)
	achievements := metrics.GenerateAchievements(list, stats)

	return components.Page("Outdoor", Div(
		components.NavBar("/outdoor"),
		Div(Class("max-w-4xl mx-auto"),
			H1(g.Text("Outdoor")),
			statsPanel(stats),
			highlights(stats),
			H2(g.Text("Achievements")),
			achievementGrid(achievements),
			H2(g.Text("Trails")),
			TrailFilterForm(stats.Parks, metrics.Filters{}),
			TrailList(list),
			H2(g.Text("Parks")),
			parkList(stats.Parks),
			seasonSection(seasons.Summarize(app.Season)),
		),
	))
}

func statsPanel(stats metrics.AggregatedStats) g.Node {
	return Div(ID("stats"), Class("grid grid-cols-2 md:grid-cols-4 gap-4"),
		components.StatCard("Total Miles", components.Miles(stats.TotalMiles), "🥾"),
		components.StatCard("Elevation Gain", components.Feet(stats.TotalElevationGain), "📈"),
		components.StatCard("Highest Point", components.Feet(stats.HighestElevation), "🏔️"),
		components.StatCard("Trails", components.Number(stats.TotalTrails), "🌲"),
		components.StatCard("Average Hike", components.Miles(stats.AverageDistance), "📏"),
		components.StatCard("Parks", components.Number(len(stats.Parks)), "🌄"),
	)
}

func highlights(stats metrics.AggregatedStats) g.Node {
	if stats.LongestHike == nil {
		return P(Class("text-gray-400"), g.Text("No hikes recorded yet."))
	}
	return Div(Class("grid grid-cols-1 md:grid-cols-2 gap-4 my-6"),
		highlightCard("Longest Hike", *stats.LongestHike),
		highlightCard("Hardest Hike", *stats.HardestHike),
	)
}

func highlightCard(label string, t trails.Trail) g.Node {
	return A(Href("/outdoor/trails/"+t.GPXFile), Class(components.CardStyle+" no-underline"),
		Span(Class("text-sm text-gray-400"), g.Text(label)),
		Span(Class("text-lg font-bold text-white"), g.Text(t.Trail)),
		Span(Class("text-gray-300"), g.Text(t.Park)),
		Span(Class("text-gray-300"),
			g.Textf("%s · %s gain", components.Miles(t.Length), components.Feet(t.ElevationGain))),
	)
}

func achievementGrid(achievements []metrics.Achievement) g.Node {
	return Div(ID("achievements"), Class("grid grid-cols-2 md:grid-cols-4 gap-4"),
		g.Map(achievements, components.AchievementBadge),
	)
}

func parkList(parks []metrics.ParkSummary) g.Node {
	return Ul(ID("parks"), Class("list-none p-0 flex flex-col gap-4"),
		g.Map(parks, func(p metrics.ParkSummary) g.Node {
			return Li(Class(components.CardStyle),
				Span(Class("font-bold text-white"), g.Text(p.Name)),
				Span(Class("text-sm text-gray-400"),
					g.Textf("%d trails · %s · %s gain", p.TrailCount, components.Miles(p.TotalMiles), components.Feet(p.TotalElevationGain))),
				Ul(Class("list-none p-0"),
					g.Map(p.Trails, func(t trails.Trail) g.Node {
						return Li(Class("flex flex-row gap-2 items-center"),
							A(Href("/outdoor/trails/"+t.GPXFile), g.Text(t.Trail)),
							components.DifficultyBadge(metrics.TrailDifficulty(t)),
						)
					}),
				),
			)
		}),
	)
}

func seasonSection(s seasons.Summary) g.Node {
	if s.Days == 0 && len(s.Outings) == 0 {
		return g.Group(nil)
	}
	return Section(ID("season"),
		H2(g.Text("Snowboarding")),
		Div(Class("grid grid-cols-2 md:grid-cols-4 gap-4"),
			components.StatCard("Days on Mountain", components.Number(s.Days), "❄️"),
			components.StatCard("Resorts Visited", components.Number(len(s.Resorts)), "🏔️"),
			components.StatCard("Vertical Feet", fmt.Sprintf("%dk", s.VerticalFeet/1000), "📈"),
			components.StatCard("Runs per Day", fmt.Sprintf("%.1f", s.AverageRunsPerDay), "🏂"),
		),
		g.If(s.FavoriteResort != "", P(g.Textf("Most visited: %s", s.FavoriteResort))),
		Ol(Class("list-none p-0"),
			g.Map(s.Outings, func(o seasons.Outing) g.Node {
				return Li(Class("flex flex-row justify-between"),
					Span(g.Text(o.Date.FormattedString())),
					Span(g.Text(o.Resort)),
					Span(g.Textf("%d runs", o.Runs)),
				)
			}),
		),
	)
}
