// Package templates holds the HTML components served by the web package.
//
// Components live in the .templ files; the *_templ.go files are produced by
// `templ generate` and must not be edited by hand.
package templates

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/mockid/internal/core"
)

var printer = message.NewPrinter(language.English)

// rankRow is one line of a top-N table.
type rankRow struct {
	name       string
	count      int
	percentage string
}

func stateRows(in []core.StateCount) []rankRow {
	rows := make([]rankRow, len(in))
	for i, sc := range in {
		rows[i] = rankRow{name: sc.State, count: sc.Count, percentage: sc.Percentage}
	}
	return rows
}

func cityRows(in []core.CityCount) []rankRow {
	rows := make([]rankRow, len(in))
	for i, cc := range in {
		rows[i] = rankRow{name: cc.City, count: cc.Count, percentage: cc.Percentage}
	}
	return rows
}

func number(n int) string {
	return printer.Sprintf("%d", n)
}

func share(n int, pct string) string {
	return printer.Sprintf("%d (%s%%)", n, pct)
}

func ageRange(a core.AgeStats) string {
	return printer.Sprintf("avg %d, %d-%d", a.Average, a.Minimum, a.Maximum)
}
