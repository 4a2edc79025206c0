package components

import (
	"fmt"
	"os"
	"strconv"
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hikelog/lib/metrics"
)

const (
	ButtonStyle = "tw p-2 px-3 bg-gray-800/90 hover:bg-gray-700 rounded-md transition-all"
	InputStyle  = "tw border border-gray-800 px-2 rounded-md appearance-none focus:outline-none bg-transparent"
	CardStyle   = "bg-gray-900 p-4 rounded-md flex flex-col gap-1"
)

var printer = message.NewPrinter(language.English)

// Number groups thousands, so 75000 renders as "75,000".
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Miles renders a distance with one decimal and grouped thousands.
func Miles(miles float64) string {
	return printer.Sprintf("%.1f mi", miles)
}

func Feet(feet int) string {
	return Number(feet) + " ft"
}

func PageFooter() g.Node {
	return Footer(Class("prose prose-sm text-gray-500 mt-12"),
		P(g.Text("Copyright "+strconv.Itoa(time.Now().Year())+" - All rights reserved.")),
		P(g.Textf("Rendered %v. ", time.Now().Format(time.RFC3339))),
	)
}

func NavBar(current string) g.Node {
	link := func(href, label string) g.Node {
		return A(Href(href), g.Text(label),
			g.If(current == href, Class("text-white font-bold no-underline")),
			g.If(current != href, Class("text-gray-400 no-underline")),
		)
	}
	return Nav(Class("flex flex-row gap-4 my-6"),
		link("/outdoor", "Outdoor"),
		link("/outdoor/trails", "Trails"),
		link("/outdoor/map", "Map"),
	)
}

func Page(title string, body g.Node) g.Node {
	var scripts []g.Node
	scripts = append(scripts, Script(Src("https://unpkg.com/htmx.org@1.9.5/dist/htmx.min.js")))

	if os.Getenv("ENV") != "production" {
		scripts = append(scripts, Script(Src("/static/dataset-reload.js")))
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			TitleEl(g.Text(title)),
			g.Group(scripts),
		),
		Body(Class("mx-auto px-4 prose prose-invert"),
			body,
			PageFooter(),
		),
	)
}

func StatCard(label, value, icon string) g.Node {
	return Div(Class(CardStyle),
		Span(Class("text-2xl"), g.Text(icon)),
		Span(Class("text-xl font-bold text-white"), g.Text(value)),
		Span(Class("text-sm text-gray-400"), g.Text(label)),
	)
}

var difficultyStyles = map[metrics.Difficulty]string{
	metrics.Easy:     "bg-green-800",
	metrics.Moderate: "bg-yellow-700",
	metrics.Hard:     "bg-orange-700",
	metrics.Extreme:  "bg-red-800",
}

func DifficultyBadge(d metrics.Difficulty) g.Node {
	return Span(Class(fmt.Sprintf("%s text-white text-xs px-2 py-1 rounded-md", difficultyStyles[d])),
		g.Text(string(d)))
}

func AchievementBadge(a metrics.Achievement) g.Node {
	style := "opacity-40"
	if a.Earned {
		style = "opacity-100"
	}
	return Div(Class(CardStyle+" "+style), ID("achievement-"+a.ID),
		g.Attr("data-earned", strconv.FormatBool(a.Earned)),
		Span(Class("text-2xl"), g.Text(a.Icon)),
		Span(Class("font-bold text-white"), g.Text(a.Title)),
		Span(Class("text-sm text-gray-400"), g.Text(a.Description)),
	)
}
