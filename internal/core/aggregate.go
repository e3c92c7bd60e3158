package core

import (
	"fmt"
	"math"
	"sort"
)

// Top-N sizes for the ranked groupings in Stats.
const (
	TopStatesLimit = 10
	TopCitiesLimit = 15
)

// Stats computes the aggregated statistics in one pass over the store.
//
// Male and female percentages are of the total record count, so records with
// any other gender value lower both percentages without appearing in either.
// Age min and max are tracked as running values; no intermediate slice of
// ages is built.
func (e *Engine) Stats() Stats {
	acc := newStatsAccumulator()
	for _, rec := range e.store.All() {
		acc.add(rec)
	}
	return acc.result()
}

// counter counts occurrences of keys and remembers first-seen order so
// that equal counts rank in encounter order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) inc(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

type rankedKey struct {
	key   string
	count int
}

// top returns at most n keys sorted by count descending.
func (c *counter) top(n int) []rankedKey {
	ranked := make([]rankedKey, len(c.order))
	for i, key := range c.order {
		ranked[i] = rankedKey{key: key, count: c.counts[key]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

type statsAccumulator struct {
	total          int
	male, female   int
	ageSum         int64
	ageMin, ageMax int
	states, cities *counter
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{
		states: newCounter(),
		cities: newCounter(),
	}
}

func (a *statsAccumulator) add(rec Record) {
	if a.total == 0 {
		a.ageMin, a.ageMax = rec.Age, rec.Age
	}
	a.total++

	switch rec.Gender {
	case GenderMale:
		a.male++
	case GenderFemale:
		a.female++
	}

	a.ageSum += int64(rec.Age)
	if rec.Age < a.ageMin {
		a.ageMin = rec.Age
	}
	if rec.Age > a.ageMax {
		a.ageMax = rec.Age
	}

	a.states.inc(rec.Address.State)
	a.cities.inc(rec.Address.City)
}

func (a *statsAccumulator) result() Stats {
	st := Stats{
		TotalRecords: a.total,
		Gender: GenderStats{
			Male:             a.male,
			Female:           a.female,
			MalePercentage:   percentage(a.male, a.total),
			FemalePercentage: percentage(a.female, a.total),
		},
		Age: AgeStats{
			Minimum: a.ageMin,
			Maximum: a.ageMax,
		},
		TopStates: []StateCount{},
		TopCities: []CityCount{},
	}

	if a.total > 0 {
		// Half rounds up.
		st.Age.Average = int(math.Floor(float64(a.ageSum)/float64(a.total) + 0.5))
	}

	for _, rk := range a.states.top(TopStatesLimit) {
		st.TopStates = append(st.TopStates, StateCount{
			State:      rk.key,
			Count:      rk.count,
			Percentage: percentage(rk.count, a.total),
		})
	}
	for _, rk := range a.cities.top(TopCitiesLimit) {
		st.TopCities = append(st.TopCities, CityCount{
			City:       rk.key,
			Count:      rk.count,
			Percentage: percentage(rk.count, a.total),
		})
	}

	return st
}

// percentage formats part/total*100 with two decimals; "0.00" when total is 0.
func percentage(part, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(total)*100)
}
