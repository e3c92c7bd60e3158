package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// IDLength is the number of decimal digits in a record identifier.
const IDLength = 12

// Sentinel errors. Adapters distinguish them with errors.Is.
var (
	// ErrInvalidArgument marks malformed input: a bad id or mistyped criteria.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a well-formed id with no record. The core itself
	// reports absence as a false flag; adapters that need an error use this.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord marks a dataset entry that fails shape validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrDuplicateID marks two dataset entries with the same id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidDataset marks a dataset that cannot be decoded.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// Argument errors. Each wraps ErrInvalidArgument; callers pick the user
// message with errors.Is, never from the text, which may echo client input.
var (
	ErrMissingID       = fmt.Errorf("%w: missing id", ErrInvalidArgument)
	ErrInvalidID       = fmt.Errorf("%w: invalid id", ErrInvalidArgument)
	ErrInvalidCriteria = fmt.Errorf("%w: invalid criteria", ErrInvalidArgument)
)

// IsWellFormedID reports whether id is exactly 12 ASCII decimal digits.
func IsWellFormedID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateID returns ErrMissingID for an empty id and an error wrapping
// ErrInvalidID if id is malformed.
func ValidateID(id string) error {
	if id == "" {
		return ErrMissingID
	}
	if !IsWellFormedID(id) {
		return fmt.Errorf("%w %q: must be exactly %d digits", ErrInvalidID, id, IDLength)
	}
	return nil
}

// CriteriaInput holds raw, untyped search parameters as received by an
// adapter (query string, CLI flags). Empty strings mean "not set".
type CriteriaInput struct {
	Name   string
	Gender string
	State  string
	City   string
	MinAge string
	MaxAge string
	Limit  string
}

// ParseCriteria type-checks raw input into Criteria. Non-numeric bounds or
// limits fail with ErrInvalidCriteria so the engine never sees them.
// When maxLimit > 0 the effective limit, including the default used for an
// unset limit, is clamped to it.
func ParseCriteria(in CriteriaInput, maxLimit int) (Criteria, error) {
	c := Criteria{
		Name:   strings.TrimSpace(in.Name),
		Gender: strings.TrimSpace(in.Gender),
		State:  strings.TrimSpace(in.State),
		City:   strings.TrimSpace(in.City),
	}

	var err error
	if c.MinAge, err = parseOptionalInt("minAge", in.MinAge); err != nil {
		return Criteria{}, err
	}
	if c.MaxAge, err = parseOptionalInt("maxAge", in.MaxAge); err != nil {
		return Criteria{}, err
	}

	limit, err := parseOptionalInt("limit", in.Limit)
	if err != nil {
		return Criteria{}, err
	}
	if limit != nil {
		if *limit < 1 {
			return Criteria{}, fmt.Errorf("%w: limit must be positive", ErrInvalidCriteria)
		}
		c.Limit = *limit
	}
	effective := c.Limit
	if effective <= 0 {
		effective = DefaultSearchLimit
	}
	if maxLimit > 0 && effective > maxLimit {
		c.Limit = maxLimit
	}

	return c, nil
}

func parseOptionalInt(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidCriteria, field, raw)
	}
	return &v, nil
}
