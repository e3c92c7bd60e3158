package core

import (
	"fmt"
	"strings"
)

// Known gender values. Other values are valid data and are counted outside
// both buckets by the statistics pass.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Address holds the location part of a record.
type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Record is one synthetic identity entry keyed by its 12-digit identifier.
type Record struct {
	ID      string  `json:"aadhaar"`
	Name    string  `json:"name"`
	Age     int     `json:"age"`
	Gender  string  `json:"gender"`
	Address Address `json:"address"`
}

// Validate checks the record shape at the ingestion boundary.
// Age is opaque data and is not range-checked.
func (r Record) Validate() error {
	if err := ValidateID(r.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Address.City) == "" {
		missing = append(missing, "address.city")
	}
	if strings.TrimSpace(r.Address.State) == "" {
		missing = append(missing, "address.state")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: record %s: required field empty: %s",
			ErrInvalidRecord, r.ID, strings.Join(missing, ", "))
	}
	return nil
}

// Criteria describes optional AND-combined search predicates.
// Zero values mean "not set"; pointer bounds distinguish an unset age bound
// from a bound of zero.
type Criteria struct {
	Name   string // case-insensitive substring of Record.Name
	Gender string // exact
	State  string // exact, Address.State
	City   string // exact, Address.City
	MinAge *int   // inclusive
	MaxAge *int   // inclusive
	Limit  int    // <= 0 means DefaultSearchLimit
}

// IsEmpty returns true if no predicate is set.
func (c Criteria) IsEmpty() bool {
	return c.Name == "" && c.Gender == "" && c.State == "" && c.City == "" &&
		c.MinAge == nil && c.MaxAge == nil
}

// GenderStats is the gender part of Stats. Percentages are of the total
// record count, formatted to two decimals.
type GenderStats struct {
	Male             int    `json:"male"`
	Female           int    `json:"female"`
	MalePercentage   string `json:"malePercentage"`
	FemalePercentage string `json:"femalePercentage"`
}

// AgeStats is the age part of Stats.
type AgeStats struct {
	Average int `json:"average"`
	Minimum int `json:"minimum"`
	Maximum int `json:"maximum"`
}

// StateCount is one ranked entry of Stats.TopStates.
type StateCount struct {
	State      string `json:"state"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// CityCount is one ranked entry of Stats.TopCities.
type CityCount struct {
	City       string `json:"city"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// Stats is the aggregated summary of the whole store.
type Stats struct {
	TotalRecords int          `json:"totalRecords"`
	Gender       GenderStats  `json:"gender"`
	Age          AgeStats     `json:"age"`
	TopStates    []StateCount `json:"topStates"`
	TopCities    []CityCount  `json:"topCities"`
}

// LookupResult is the outcome of a lookup at the query-serving boundary.
type LookupResult struct {
	Found  bool    `json:"found"`
	Record *Record `json:"record,omitempty"`
}
