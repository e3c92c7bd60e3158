package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/mockid/internal/config"
	"github.com/JonMunkholm/mockid/internal/metrics"
)

// Service is the entry point used by the HTTP and CLI adapters.
// It type-checks raw input, bounds full-store passes and records metrics
// around an Engine. Results that depend only on the immutable store
// (stats, states, cities) are computed once and reused.
type Service struct {
	engine  *Engine
	limiter *ScanLimiter
	metrics *metrics.Metrics

	maxLimit  int
	maxSample int

	stats  func() Stats
	states func() []string
	cities func() []string
}

// NewService creates a Service over store. m may be nil.
func NewService(store *Store, cfg *config.Config, m *metrics.Metrics, opts ...EngineOption) *Service {
	engine := NewEngine(store, opts...)
	s := &Service{
		engine:    engine,
		limiter:   NewScanLimiter(cfg.Query.MaxConcurrentScans, cfg.Query.MaxWaitTime),
		metrics:   m,
		maxLimit:  cfg.Query.MaxLimit,
		maxSample: cfg.Query.MaxSample,
		stats:     sync.OnceValue(engine.Stats),
		states:    sync.OnceValue(engine.States),
		cities:    sync.OnceValue(engine.Cities),
	}
	m.SetDatasetRecords(store.Size())
	return s
}

// RecordCount returns the number of records in the store.
func (s *Service) RecordCount() int {
	return s.engine.Store().Size()
}

// Lookup validates id and fetches its record. A malformed id fails with
// ErrInvalidArgument before the store is consulted; an absent record is
// reported as Found=false with a nil error.
func (s *Service) Lookup(ctx context.Context, id string) (LookupResult, error) {
	start := time.Now()

	if err := ValidateID(id); err != nil {
		s.metrics.IncrementLookup(metrics.OutcomeInvalid)
		s.metrics.ObserveQuery("lookup", start, err)
		return LookupResult{}, err
	}

	rec, ok := s.engine.Store().Get(id)
	s.metrics.ObserveQuery("lookup", start, nil)
	if !ok {
		s.metrics.IncrementLookup(metrics.OutcomeNotFound)
		return LookupResult{Found: false}, nil
	}

	s.metrics.IncrementLookup(metrics.OutcomeFound)
	return LookupResult{Found: true, Record: &rec}, nil
}

// Get is Lookup for callers that want absence as an error.
// Returns an error wrapping ErrNotFound when the id is well formed but unknown.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	res, err := s.Lookup(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !res.Found {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *res.Record, nil
}

// Search parses raw criteria and runs the search.
// The requested limit is clamped to the configured maximum.
func (s *Service) Search(ctx context.Context, in CriteriaInput) ([]Record, error) {
	start := time.Now()

	c, err := ParseCriteria(in, s.maxLimit)
	if err != nil {
		s.metrics.ObserveQuery("search", start, err)
		return nil, err
	}

	results := s.engine.Search(c)
	s.metrics.ObserveQuery("search", start, nil)
	s.metrics.ObserveResults("search", len(results))
	return results, nil
}

// Sample draws count records with replacement. count is clamped to the
// configured maximum; count <= 0 returns no records.
func (s *Service) Sample(ctx context.Context, count int) ([]Record, error) {
	if s.maxSample > 0 && count > s.maxSample {
		count = s.maxSample
	}

	var out []Record
	err := s.scan(ctx, "sample", func() {
		out = s.engine.Sample(count)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveResults("sample", len(out))
	return out, nil
}

// Stats returns the aggregated statistics.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.scan(ctx, "stats", func() {
		st = s.stats()
	})
	return st, err
}

// States returns the sorted distinct states.
func (s *Service) States(ctx context.Context) ([]string, error) {
	var out []string
	err := s.scan(ctx, "states", func() {
		out = s.states()
	})
	return out, err
}

// Cities returns the sorted distinct cities.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	var out []string
	err := s.scan(ctx, "cities", func() {
		out = s.cities()
	})
	return out, err
}

// scan runs fn under the scan limiter and records the query.
func (s *Service) scan(ctx context.Context, operation string, fn func()) error {
	start := time.Now()
	err := s.limiter.Do(ctx, fn)
	s.metrics.ObserveQuery(operation, start, err)
	return err
}

// ScanStatus reports scan limiter usage.
func (s *Service) ScanStatus() ScanLimiterStatus {
	return s.limiter.Status()
}

// WaitForScans blocks until running full passes finish or ctx ends.
func (s *Service) WaitForScans(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
