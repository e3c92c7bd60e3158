package core

// store.go implements the immutable in-memory record store.
//
// Records are kept in dataset order next to an id -> position map. Every
// position is also entered into three inverted indexes (gender, state, city)
// held as roaring bitmaps, so exact-match search predicates can skip records
// without changing the order in which matches are produced.
//
// Nothing is mutated after NewStore returns, so concurrent readers need no
// locking.

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring"
)

// Store owns the full id -> Record mapping.
type Store struct {
	records []Record
	byID    map[string]int

	byGender map[string]*roaring.Bitmap
	byState  map[string]*roaring.Bitmap
	byCity   map[string]*roaring.Bitmap
}

// NewStore builds a store from records in dataset order.
// Returns an error if a record fails validation or an id repeats.
func NewStore(records []Record) (*Store, error) {
	s := &Store{
		records:  make([]Record, 0, len(records)),
		byID:     make(map[string]int, len(records)),
		byGender: make(map[string]*roaring.Bitmap),
		byState:  make(map[string]*roaring.Bitmap),
		byCity:   make(map[string]*roaring.Bitmap),
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if _, exists := s.byID[rec.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}

		pos := uint32(len(s.records))
		s.byID[rec.ID] = len(s.records)
		s.records = append(s.records, rec)

		addPosting(s.byGender, rec.Gender, pos)
		addPosting(s.byState, rec.Address.State, pos)
		addPosting(s.byCity, rec.Address.City, pos)
	}

	for _, idx := range []map[string]*roaring.Bitmap{s.byGender, s.byState, s.byCity} {
		for _, bm := range idx {
			bm.RunOptimize()
		}
	}

	return s, nil
}

// MustNewStore builds a store and panics on error.
// Use only in tests or with data that is known to be valid.
func MustNewStore(records []Record) *Store {
	s, err := NewStore(records)
	if err != nil {
		panic(err)
	}
	return s
}

func addPosting(idx map[string]*roaring.Bitmap, key string, pos uint32) {
	bm, ok := idx[key]
	if !ok {
		bm = roaring.New()
		idx[key] = bm
	}
	bm.Add(pos)
}

// Exists reports whether a well-formed id is present.
// Malformed ids return false.
func (s *Store) Exists(id string) bool {
	if !IsWellFormedID(id) {
		return false
	}
	_, ok := s.byID[id]
	return ok
}

// Get returns the record for an exact id match.
func (s *Store) Get(id string) (Record, bool) {
	pos, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.records[pos], true
}

// Size returns the total record count.
func (s *Store) Size() int {
	return len(s.records)
}

// At returns the record at position pos in dataset order.
// Panics if pos is out of range.
func (s *Store) At(pos int) Record {
	return s.records[pos]
}

// All yields every (id, record) pair exactly once in dataset order.
// Each call starts a fresh pass.
func (s *Store) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		for _, rec := range s.records {
			if !yield(rec.ID, rec) {
				return
			}
		}
	}
}

// candidates intersects the inverted indexes for the non-empty exact-match
// keys. The second result is false when no key is set, meaning every
// position is a candidate.
func (s *Store) candidates(gender, state, city string) (*roaring.Bitmap, bool) {
	var sets []*roaring.Bitmap
	for _, p := range []struct {
		idx map[string]*roaring.Bitmap
		key string
	}{
		{s.byGender, gender},
		{s.byState, state},
		{s.byCity, city},
	} {
		if p.key == "" {
			continue
		}
		bm, ok := p.idx[p.key]
		if !ok {
			return roaring.New(), true
		}
		sets = append(sets, bm)
	}

	switch len(sets) {
	case 0:
		return nil, false
	case 1:
		return sets[0], true
	default:
		return roaring.FastAnd(sets...), true
	}
}
