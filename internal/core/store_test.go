package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func (s *StoreSuite) SetupTest() {
	s.store = MustNewStore(mixedRecords())
}

func (s *StoreSuite) TestSize() {
	s.Equal(8, s.store.Size())
}

func (s *StoreSuite) TestExists() {
	s.True(s.store.Exists("100000000001"))
	s.False(s.store.Exists("100000000099"))
	s.False(s.store.Exists("12345"))
	s.False(s.store.Exists("10000000000a"))
	s.False(s.store.Exists(""))
}

func (s *StoreSuite) TestGet() {
	got, ok := s.store.Get("100000000002")
	s.Require().True(ok)
	s.Equal("Ravi Kumar", got.Name)
	s.Equal("Delhi", got.Address.City)

	_, ok = s.store.Get("100000000099")
	s.False(ok)
}

func (s *StoreSuite) TestAll_DatasetOrderOnce() {
	var ids []string
	for id, rec := range s.store.All() {
		s.Equal(id, rec.ID)
		ids = append(ids, id)
	}

	want := make([]string, 0, len(mixedRecords()))
	for _, r := range mixedRecords() {
		want = append(want, r.ID)
	}
	s.Equal(want, ids)
}

func (s *StoreSuite) TestAll_EarlyBreakAndRestart() {
	n := 0
	for range s.store.All() {
		n++
		if n == 3 {
			break
		}
	}
	s.Equal(3, n)

	total := 0
	for range s.store.All() {
		total++
	}
	s.Equal(s.store.Size(), total)
}

func (s *StoreSuite) TestCandidates() {
	_, indexed := s.store.candidates("", "", "")
	s.False(indexed)

	bm, indexed := s.store.candidates(GenderFemale, "Maharashtra", "")
	s.True(indexed)
	s.Equal([]uint32{0, 3}, bm.ToArray())

	bm, indexed = s.store.candidates("", "Atlantis", "")
	s.True(indexed)
	s.True(bm.IsEmpty())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestNewStore_Example(t *testing.T) {
	store, err := NewStore(exampleRecords())
	require.NoError(t, err)

	_, ok := store.Get("333333333333")
	assert.False(t, ok)
	assert.False(t, store.Exists("12345"))
	assert.True(t, store.Exists("111111111111"))
}

func TestNewStore_Empty(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Size())
	for range store.All() {
		t.Fatal("empty store yielded a record")
	}
}

func TestNewStore_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    error
	}{
		{
			name:    "malformed id",
			records: []Record{rec("12345", "A", 1, GenderMale, "Pune", "Maharashtra")},
			want:    ErrInvalidRecord,
		},
		{
			name:    "empty name",
			records: []Record{rec("111111111111", " ", 1, GenderMale, "Pune", "Maharashtra")},
			want:    ErrInvalidRecord,
		},
		{
			name:    "empty state",
			records: []Record{rec("111111111111", "A", 1, GenderMale, "Pune", "")},
			want:    ErrInvalidRecord,
		},
		{
			name: "duplicate id",
			records: []Record{
				rec("111111111111", "A", 1, GenderMale, "Pune", "Maharashtra"),
				rec("111111111111", "B", 2, GenderFemale, "Delhi", "Delhi"),
			},
			want: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.records)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMustNewStore_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewStore([]Record{rec("bad", "A", 1, GenderMale, "Pune", "Maharashtra")})
	})
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"123456789012", true},
		{"000000000000", true},
		{"12345678901", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{" 23456789012", false},
		{"１２３４５６７８９０１２", false}, // full-width digits
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWellFormedID(tt.id), "IsWellFormedID(%q)", tt.id)
		err := ValidateID(tt.id)
		if tt.want {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrInvalidArgument)
		}
	}
}
