// Package cli implements the idcli command tree and its text output.
//
// Formatters are plain functions over core results writing to an
// io.Writer, so each command's output is testable without a dataset file.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/mockid/internal/core"
)

// CitiesShown is how many cities the cities command lists before
// summarizing the rest.
const CitiesShown = 50

// MaxReducedSizeMB is the size a reduced snapshot should stay under to be
// committed alongside the code.
const MaxReducedSizeMB = 100

var printer = message.NewPrinter(language.English)

func heading(w io.Writer, title, rule string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// WriteStats prints the dataset statistics report.
func WriteStats(w io.Writer, st core.Stats) {
	heading(w, "📊 Dataset Statistics", "====================")
	printer.Fprintf(w, "Total Records: %d\n", st.TotalRecords)

	fmt.Fprintln(w, "\nGender Distribution:")
	printer.Fprintf(w, "  Male: %d (%s%%)\n", st.Gender.Male, st.Gender.MalePercentage)
	printer.Fprintf(w, "  Female: %d (%s%%)\n", st.Gender.Female, st.Gender.FemalePercentage)

	fmt.Fprintln(w, "\nAge Distribution:")
	fmt.Fprintf(w, "  Average: %d years\n", st.Age.Average)
	fmt.Fprintf(w, "  Range: %d - %d years\n", st.Age.Minimum, st.Age.Maximum)

	fmt.Fprintf(w, "\nTop %d States:\n", core.TopStatesLimit)
	for i, sc := range st.TopStates {
		printer.Fprintf(w, "  %d. %s: %d (%s%%)\n", i+1, sc.State, sc.Count, sc.Percentage)
	}

	fmt.Fprintf(w, "\nTop %d Cities:\n", core.TopCitiesLimit)
	for i, cc := range st.TopCities {
		printer.Fprintf(w, "  %d. %s: %d (%s%%)\n", i+1, cc.City, cc.Count, cc.Percentage)
	}
}

// WriteSample prints randomly drawn records. The heading shows how many were
// drawn, which may be fewer than requested.
func WriteSample(w io.Writer, records []core.Record) {
	heading(w, fmt.Sprintf("🎲 %d Random Records", len(records)), "==================")
	for i, r := range records {
		fmt.Fprintf(w, "%d. Aadhaar: %s\n", i+1, r.ID)
		fmt.Fprintf(w, "   Name: %s\n", r.Name)
		fmt.Fprintf(w, "   Age: %d, Gender: %s\n", r.Age, r.Gender)
		fmt.Fprintf(w, "   Location: %s, %s\n", r.Address.City, r.Address.State)
		fmt.Fprintln(w)
	}
}

// WriteSearch prints name search results.
func WriteSearch(w io.Writer, term string, records []core.Record) {
	heading(w, fmt.Sprintf("🔍 Searching for: %q", term), "========================")
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "Found %d results:\n", len(records))
	for i, r := range records {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, r.Name, r.ID)
		fmt.Fprintf(w, "   Age: %d, Gender: %s\n", r.Age, r.Gender)
		fmt.Fprintf(w, "   Location: %s, %s\n", r.Address.City, r.Address.State)
		fmt.Fprintln(w)
	}
}

// WriteLookup prints a lookup result as indented JSON, or a not-found line.
func WriteLookup(w io.Writer, id string, res core.LookupResult) error {
	heading(w, "🔍 Looking up Aadhaar: "+id, "============================")
	if !res.Found {
		fmt.Fprintln(w, "Record not found.")
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Record)
}

// WriteStates prints the numbered list of states.
func WriteStates(w io.Writer, states []string) {
	heading(w, "📍 Available States", "==================")
	for i, s := range states {
		fmt.Fprintf(w, "%d. %s\n", i+1, s)
	}
}

// WriteCities prints the first CitiesShown cities and a count of the rest.
func WriteCities(w io.Writer, cities []string) {
	heading(w, "🏙️  Available Cities", "==================")
	for i, c := range cities {
		if i == CitiesShown {
			break
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, c)
	}
	if len(cities) > CitiesShown {
		printer.Fprintf(w, "... and %d more cities\n", len(cities)-CitiesShown)
	}
}

// WriteReduceSummary prints the result of a reduce run. sizeBytes is the
// size of the written snapshot; percentages are of the requested target.
func WriteReduceSummary(w io.Writer, sum core.ReduceSummary, target int, sizeBytes int64) {
	sizeMB := float64(sizeBytes) / 1024 / 1024

	fmt.Fprintln(w)
	heading(w, "🎉 Reduction Complete!", "====================")
	fmt.Fprintf(w, "New file size: %.2f MB\n", sizeMB)
	printer.Fprintf(w, "Records: %d\n", sum.Kept)
	if sizeMB < MaxReducedSizeMB {
		fmt.Fprintln(w, "GitHub compatible: ✅ Yes")
	} else {
		fmt.Fprintln(w, "GitHub compatible: ❌ No")
	}
	printer.Fprintf(w, "Gender: %d Male (%.1f%%), %d Female (%.1f%%)\n",
		sum.Male, share(sum.Male, target), sum.Female, share(sum.Female, target))
}

func share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
