package pages

import (
	"context"
	"net/url"
	"slices"

	g "github.com/maragudk/gomponents"
	hx "github.com/maragudk/gomponents-htmx"
	. "github.com/maragudk/gomponents/html"

	"hikelog/components"
	"hikelog/lib"
	"hikelog/lib/metrics"
	"hikelog/lib/trails"
)

// FiltersFromQuery reads ?park=&long=1&high=1&difficulty=. Unknown difficulties are dropped.
func FiltersFromQuery(q url.Values) metrics.Filters {
	f := metrics.Filters{
		LongDistance:  q.Get("long") == "1" || q.Get("long") == "on",
		HighElevation: q.Get("high") == "1" || q.Get("high") == "on",
	}
	for _, p := range q["park"] {
		if p != "" {
			f.Parks = append(f.Parks, p)
		}
	}
	for _, d := range q["difficulty"] {
		if slices.Contains(metrics.Difficulties, metrics.Difficulty(d)) {
			f.Difficulty = append(f.Difficulty, metrics.Difficulty(d))
		}
	}
	return f
}

func TrailsPage(ctx context.Context, app *lib.App, f metrics.Filters) g.Node {
	list, err := app.Dataset.GetTrails()
	if err != nil {
		return Error(ctx, err)
	}
	stats := metrics.CalculateAggregatedStats(list)

	return components.Page("Trails", Div(
		components.NavBar("/outdoor/trails"),
		Div(Class("max-w-4xl mx-auto"),
			H1(g.Text("Trails")),
			TrailFilterForm(stats.Parks, f),
			TrailList(metrics.FilterTrails(list, f)),
		),
	))
}

func TrailFilterForm(parks []metrics.ParkSummary, f metrics.Filters) g.Node {
	return Form(ID("trail-filters"), Class("flex flex-row flex-wrap gap-4 items-center"),
		hx.Get("/outdoor/trails"),
		hx.Trigger("change"),
		hx.Target("#trail-list"),
		hx.Swap("outerHTML"),
		Select(Name("park"), Class(components.InputStyle),
			Option(Value(""), g.Text("All parks")),
			g.Map(parks, func(p metrics.ParkSummary) g.Node {
				return Option(Value(p.Name), g.Text(p.Name), g.If(slices.Contains(f.Parks, p.Name), Selected()))
			}),
		),
		Label(Input(Type("checkbox"), Name("long"), Value("1"), g.If(f.LongDistance, Checked())), g.Text(" 15+ miles")),
		Label(Input(Type("checkbox"), Name("high"), Value("1"), g.If(f.HighElevation, Checked())), g.Text(" 4,000+ ft")),
		g.Map(metrics.Difficulties, func(d metrics.Difficulty) g.Node {
			return Label(
				Input(Type("checkbox"), Name("difficulty"), Value(string(d)), g.If(slices.Contains(f.Difficulty, d), Checked())),
				g.Text(" "+string(d)),
			)
		}),
		A(Href("/outdoor/trails"), Class(components.ButtonStyle+" no-underline"), g.Text("Clear")),
	)
}

// TrailList is swapped in place by the filter form.
func TrailList(list []trails.Trail) g.Node {
	if len(list) == 0 {
		return Div(ID("trail-list"), P(Class("text-gray-400"), g.Text("No trails match these filters.")))
	}
	return Div(ID("trail-list"),
		Table(Class("w-full"),
			THead(Tr(
				Th(g.Text("Trail")), Th(g.Text("Park")), Th(g.Text("Length")),
				Th(g.Text("Gain")), Th(g.Text("Time")), Th(g.Text("Difficulty")),
			)),
			TBody(g.Map(list, func(t trails.Trail) g.Node {
				return Tr(
					Td(A(Href("/outdoor/trails/"+url.PathEscape(t.GPXFile)), g.Text(t.Trail))),
					Td(g.Text(t.Park)),
					Td(g.Text(components.Miles(t.Length))),
					Td(g.Text(components.Feet(t.ElevationGain))),
					Td(g.Text(t.EstimatedTime)),
					Td(components.DifficultyBadge(metrics.TrailDifficulty(t))),
				)
			})),
		),
	)
}
