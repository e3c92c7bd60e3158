package core

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// linearSearch is the reference implementation for indexed search.
func linearSearch(store *Store, c Criteria) []Record {
	limit := c.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	m := newMatcher(c)
	var out []Record
	for _, r := range store.All() {
		if m.match(r) {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ============================================================================
// Search
// ============================================================================

func TestSearch_Example(t *testing.T) {
	e := NewEngine(MustNewStore(exampleRecords()))

	got := e.Search(Criteria{Gender: GenderMale})
	require.Len(t, got, 1)
	assert.Equal(t, "222222222222", got[0].ID)
}

func TestSearch_NoCriteriaReturnsPrefix(t *testing.T) {
	store := MustNewStore(generatedRecords(250))
	e := NewEngine(store)

	assert.Len(t, e.Search(Criteria{}), DefaultSearchLimit)
	assert.Len(t, e.Search(Criteria{Limit: 7}), 7)
	assert.Len(t, e.Search(Criteria{Limit: 1000}), 250)

	got := e.Search(Criteria{Limit: 3})
	assert.Equal(t, []string{"500000000000", "500000000001", "500000000002"}, ids(got))
}

func TestSearch_Predicates(t *testing.T) {
	e := NewEngine(MustNewStore(mixedRecords()))

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"name substring case-insensitive", Criteria{Name: "kUmA"}, []string{"100000000002", "100000000004", "100000000006"}},
		{"gender exact", Criteria{Gender: GenderFemale}, []string{"100000000001", "100000000004", "100000000006", "100000000008"}},
		{"gender is case-sensitive", Criteria{Gender: "female"}, []string{}},
		{"state", Criteria{State: "Maharashtra"}, []string{"100000000001", "100000000003", "100000000004", "100000000007"}},
		{"city", Criteria{City: "Delhi"}, []string{"100000000002", "100000000006"}},
		{"state and city", Criteria{State: "Maharashtra", City: "Mumbai"}, []string{"100000000003", "100000000004"}},
		{"min age inclusive", Criteria{MinAge: intPtr(52)}, []string{"100000000004", "100000000007"}},
		{"max age inclusive", Criteria{MaxAge: intPtr(22)}, []string{"100000000003", "100000000005"}},
		{"age range", Criteria{MinAge: intPtr(29), MaxAge: intPtr(37)}, []string{"100000000001", "100000000006", "100000000008"}},
		{"zero min age is a bound", Criteria{MinAge: intPtr(0), Gender: GenderMale}, []string{"100000000002", "100000000005", "100000000007"}},
		{"empty range", Criteria{MinAge: intPtr(50), MaxAge: intPtr(40)}, []string{}},
		{"unknown state", Criteria{State: "Atlantis"}, []string{}},
		{"all combined", Criteria{Name: "a", Gender: GenderFemale, State: "Maharashtra", MinAge: intPtr(40)}, []string{"100000000004"}},
		{"limit applies after filtering", Criteria{State: "Maharashtra", Limit: 2}, []string{"100000000001", "100000000003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Search(tt.c)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearch_IndexedMatchesLinear(t *testing.T) {
	store := MustNewStore(generatedRecords(500))
	e := NewEngine(store)

	criteria := []Criteria{
		{Gender: GenderFemale},
		{State: "Kerala", Limit: 20},
		{City: "Delhi", MinAge: intPtr(40)},
		{Gender: GenderMale, State: "Rajasthan", Name: "1"},
		{Gender: GenderMale, City: "Kochi"},
		{Name: "Person 4", MaxAge: intPtr(50), Limit: 1000},
	}

	for _, c := range criteria {
		assert.Equal(t, ids(linearSearch(store, c)), ids(e.Search(c)), "criteria %+v", c)
	}
}

// matchPositions returns the store positions matching c, in store order.
func matchPositions(store *Store, c Criteria) []int {
	m := newMatcher(c)
	var out []int
	for pos := range store.Size() {
		if m.match(store.At(pos)) {
			out = append(out, pos)
		}
	}
	return out
}

func TestSearch_StopsAtLimit(t *testing.T) {
	store := MustNewStore(generatedRecords(1000))

	tests := []struct {
		name    string
		c       Criteria
		indexed bool
	}{
		{"no criteria", Criteria{Limit: 10}, false},
		{"name only", Criteria{Name: "person 1", Limit: 5}, false},
		{"age only", Criteria{MinAge: intPtr(70), Limit: 4}, false},
		{"gender index", Criteria{Gender: GenderFemale, Limit: 10}, true},
		{"state index with age filter", Criteria{State: "Kerala", MinAge: intPtr(50), Limit: 3}, true},
		{"gender and city index", Criteria{Gender: GenderMale, City: "Jaipur", Limit: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, indexed := store.candidates(tt.c.Gender, tt.c.State, tt.c.City)
			require.Equal(t, tt.indexed, indexed)

			matches := matchPositions(store, tt.c)
			require.Greater(t, len(matches), tt.c.Limit, "fixture must have more matches than the limit")
			last := matches[tt.c.Limit-1]

			var visited []int
			e := NewEngine(store)
			e.visit = func(pos int) { visited = append(visited, pos) }

			got := e.Search(tt.c)
			require.Len(t, got, tt.c.Limit)
			assert.Equal(t, store.At(last).ID, got[len(got)-1].ID)

			require.NotEmpty(t, visited)
			assert.LessOrEqual(t, len(visited), last+1)
			assert.Equal(t, last, visited[len(visited)-1], "scan stops at the limit-th match")
		})
	}
}

func TestSearch_IndexSkipsNonCandidates(t *testing.T) {
	store := MustNewStore(generatedRecords(1000))
	c := Criteria{City: "Kochi", Limit: 1000}

	var visited []int
	e := NewEngine(store)
	e.visit = func(pos int) { visited = append(visited, pos) }

	got := e.Search(c)
	assert.Len(t, got, len(matchPositions(store, c)))
	assert.Len(t, visited, len(got), "only index candidates are examined")
}

func TestSearch_EmptyStore(t *testing.T) {
	e := NewEngine(MustNewStore(nil))
	assert.Empty(t, e.Search(Criteria{}))
	assert.Empty(t, e.Search(Criteria{Gender: GenderMale}))
}

// ============================================================================
// Sample
// ============================================================================

func TestSample_SizeAndMembership(t *testing.T) {
	store := MustNewStore(mixedRecords())
	e := NewEngine(store, WithRand(rand.New(rand.NewPCG(1, 2))))

	got := e.Sample(5)
	require.Len(t, got, 5)
	for _, r := range got {
		stored, ok := store.Get(r.ID)
		require.True(t, ok)
		assert.Equal(t, stored, r)
	}

	assert.Len(t, e.Sample(100), store.Size(), "count is capped at store size")
}

func TestSample_NonPositiveCount(t *testing.T) {
	e := NewEngine(MustNewStore(generatedRecords(50)))

	for _, n := range []int{0, -1, -50} {
		got := e.Sample(n)
		assert.NotNil(t, got)
		assert.Empty(t, got, "Sample(%d)", n)
	}
}

func TestSample_Deterministic(t *testing.T) {
	store := MustNewStore(generatedRecords(100))

	a := NewEngine(store, WithRand(rand.New(rand.NewPCG(7, 7)))).Sample(20)
	b := NewEngine(store, WithRand(rand.New(rand.NewPCG(7, 7)))).Sample(20)
	assert.Equal(t, ids(a), ids(b))
}

func TestSample_EmptyStore(t *testing.T) {
	e := NewEngine(MustNewStore(nil))
	assert.Empty(t, e.Sample(5))
}

// ============================================================================
// States / Cities
// ============================================================================

func TestStatesAndCities(t *testing.T) {
	e := NewEngine(MustNewStore(mixedRecords()))

	assert.Equal(t, []string{"Bihar", "Delhi", "Maharashtra", "Rajasthan"}, e.States())
	assert.Equal(t, []string{"Delhi", "Jaipur", "Mumbai", "Patna", "Pune"}, e.Cities())
}

func TestStatesAndCities_Empty(t *testing.T) {
	e := NewEngine(MustNewStore(nil))
	assert.Empty(t, e.States())
	assert.Empty(t, e.Cities())
}

// ============================================================================
// ParseCriteria
// ============================================================================

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria(CriteriaInput{
		Name:   " asha ",
		Gender: "Female",
		MinAge: "18",
		MaxAge: "0",
		Limit:  "5",
	}, 1000)
	require.NoError(t, err)
	assert.Equal(t, "asha", c.Name)
	assert.Equal(t, GenderFemale, c.Gender)
	require.NotNil(t, c.MinAge)
	assert.Equal(t, 18, *c.MinAge)
	require.NotNil(t, c.MaxAge)
	assert.Equal(t, 0, *c.MaxAge)
	assert.Equal(t, 5, c.Limit)

	c, err = ParseCriteria(CriteriaInput{}, 1000)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Limit)

	c, err = ParseCriteria(CriteriaInput{Limit: "5000"}, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, c.Limit, "limit is clamped")
	c, err = ParseCriteria(CriteriaInput{}, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, c.Limit, "default limit is clamped too")

	c, err = ParseCriteria(CriteriaInput{Limit: "20"}, 50)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Limit)
}

func TestParseCriteria_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   CriteriaInput
	}{
		{"non-numeric min age", CriteriaInput{MinAge: "ten"}},
		{"non-numeric max age", CriteriaInput{MaxAge: "4.5"}},
		{"non-numeric limit", CriteriaInput{Limit: "all"}},
		{"zero limit", CriteriaInput{Limit: "0"}},
		{"negative limit", CriteriaInput{Limit: "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCriteria(tt.in, 1000)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCriteria)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

// ============================================================================
// Benchmarks
// ============================================================================

func BenchmarkSearch_Indexed(b *testing.B) {
	e := NewEngine(MustNewStore(generatedRecords(50000)))
	c := Criteria{Gender: GenderFemale, State: "Kerala", MinAge: intPtr(60)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Search(c)
	}
}

func BenchmarkSearch_NameScan(b *testing.B) {
	e := NewEngine(MustNewStore(generatedRecords(50000)))
	c := Criteria{Name: "person 4999"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Search(c)
	}
}

func BenchmarkStats(b *testing.B) {
	e := NewEngine(MustNewStore(generatedRecords(50000)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Stats()
	}
}
