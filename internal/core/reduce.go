package core

import "math/rand/v2"

// ReduceSummary describes a reduced dataset for reporting.
type ReduceSummary struct {
	Source int // records before reduction
	Kept   int
	Male   int
	Female int
}

// Reduce returns a uniformly shuffled subset of at most target records.
// The input slice is not modified. A nil rng uses the global source.
func Reduce(records []Record, target int, rng *rand.Rand) []Record {
	shuffled := make([]Record, len(records))
	copy(shuffled, records)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	// Fisher-Yates
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if target < 0 {
		target = 0
	}
	if target < len(shuffled) {
		shuffled = shuffled[:target]
	}
	return shuffled
}

// Summarize counts the gender split of a reduced dataset.
func Summarize(source int, kept []Record) ReduceSummary {
	sum := ReduceSummary{Source: source, Kept: len(kept)}
	for _, rec := range kept {
		switch rec.Gender {
		case GenderMale:
			sum.Male++
		case GenderFemale:
			sum.Female++
		}
	}
	return sum
}
