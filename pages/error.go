package pages

import (
	"context"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"hikelog/components"
)

func Error(ctx context.Context, err error) g.Node {
	return components.Page("Error", Div(
		Div(Class("max-w-4xl mx-auto"),
			H1(Class("text-4xl font-bold"), g.Text("Error")),
			P(Class("text-gray-600"), g.Text(err.Error())),
		),
	))
}
