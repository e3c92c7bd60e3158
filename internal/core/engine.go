package core

import (
	"math/rand/v2"
	"sort"
	"strings"
)

const (
	// DefaultSearchLimit caps search results when Criteria.Limit is unset.
	DefaultSearchLimit = 100

	// DefaultSampleCount is the sample size adapters use when none is given.
	DefaultSampleCount = 10
)

// Engine runs queries over a Store. It holds no mutable state of its own
// and may be shared between goroutines.
type Engine struct {
	store *Store
	rng   *rand.Rand

	// visit, when set, is called with each store position Search examines.
	visit func(pos int)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand sets the random source used by Sample.
// A *rand.Rand is not safe for concurrent use; callers sharing an Engine
// across goroutines should keep the default source.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = rng
	}
}

// NewEngine returns an Engine bound to store.
func NewEngine(store *Store, opts ...EngineOption) *Engine {
	e := &Engine{store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the store the engine reads from.
func (e *Engine) Store() *Store {
	return e.store
}

// Search returns records matching all set predicates in store order.
// Scanning stops as soon as limit matches are collected.
func (e *Engine) Search(c Criteria) []Record {
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	m := newMatcher(c)
	results := make([]Record, 0, min(limit, e.store.Size()))

	positions, indexed := e.store.candidates(c.Gender, c.State, c.City)
	if !indexed {
		for pos := range e.store.Size() {
			if rec, ok := e.examine(m, pos); ok {
				results = append(results, rec)
				if len(results) >= limit {
					break
				}
			}
		}
		return results
	}

	// Bitmap iteration is ascending, which is store order.
	it := positions.Iterator()
	for it.HasNext() {
		if rec, ok := e.examine(m, int(it.Next())); ok {
			results = append(results, rec)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

func (e *Engine) examine(m matcher, pos int) (Record, bool) {
	if e.visit != nil {
		e.visit(pos)
	}
	rec := e.store.At(pos)
	return rec, m.match(rec)
}

// matcher evaluates Criteria against a single record.
type matcher struct {
	c         Criteria
	nameLower string
}

func newMatcher(c Criteria) matcher {
	return matcher{c: c, nameLower: strings.ToLower(c.Name)}
}

func (m matcher) match(rec Record) bool {
	if m.c.Name != "" && !strings.Contains(strings.ToLower(rec.Name), m.nameLower) {
		return false
	}
	if m.c.Gender != "" && rec.Gender != m.c.Gender {
		return false
	}
	if m.c.State != "" && rec.Address.State != m.c.State {
		return false
	}
	if m.c.City != "" && rec.Address.City != m.c.City {
		return false
	}
	if m.c.MinAge != nil && rec.Age < *m.c.MinAge {
		return false
	}
	if m.c.MaxAge != nil && rec.Age > *m.c.MaxAge {
		return false
	}
	return true
}

// Sample returns min(count, size) records drawn uniformly with replacement.
// The same record may appear more than once. A count <= 0 yields an empty
// slice.
func (e *Engine) Sample(count int) []Record {
	n := e.store.Size()
	count = max(min(count, n), 0)

	out := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, e.store.At(e.intN(n)))
	}
	return out
}

func (e *Engine) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

// States returns the distinct states, sorted ascending.
func (e *Engine) States() []string {
	return e.distinct(func(r Record) string { return r.Address.State })
}

// Cities returns the distinct cities, sorted ascending.
func (e *Engine) Cities() []string {
	return e.distinct(func(r Record) string { return r.Address.City })
}

func (e *Engine) distinct(field func(Record) string) []string {
	seen := make(map[string]struct{})
	for _, rec := range e.store.All() {
		seen[field(rec)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
