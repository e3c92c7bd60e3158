package core

// scan_limiter.go bounds how many full-store passes run at once.
//
// Statistics, sampling and domain enumeration walk every record. On a large
// store a burst of such requests can pin every CPU, so adapters run them
// through a ScanLimiter: a semaphore with a bounded wait. Requests that do
// not get a slot within maxWait fail with ErrTooManyScans.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyScans is returned when every scan slot stays occupied for the
// whole wait window. Clients should retry after a short delay.
var ErrTooManyScans = errors.New("too many concurrent scans, server busy")

// DefaultMaxConcurrentScans is the default number of parallel full passes.
const DefaultMaxConcurrentScans = 4

// DefaultScanWait is how long a request waits for a slot before failing.
const DefaultScanWait = 5 * time.Second

// ScanLimiter is a counting semaphore for full-store passes.
type ScanLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewScanLimiter allows at most maxConcurrent passes; waiters give up after maxWait.
// Non-positive arguments fall back to the defaults.
func NewScanLimiter(maxConcurrent int, maxWait time.Duration) *ScanLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentScans
	}
	if maxWait <= 0 {
		maxWait = DefaultScanWait
	}
	return &ScanLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to maxWait.
// The caller must call Release after a nil return.
func (l *ScanLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyScans
	}
}

// Release frees a slot taken by Acquire.
func (l *ScanLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Do runs fn while holding a slot.
func (l *ScanLimiter) Do(ctx context.Context, fn func()) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	fn()
	return nil
}

// ActiveCount returns the number of passes currently running.
func (l *ScanLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// MaxConcurrent returns the slot count.
func (l *ScanLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no pass is running or ctx ends.
// Used during graceful shutdown.
func (l *ScanLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.ActiveCount() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// ScanLimiterStatus is a snapshot of limiter usage.
type ScanLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns current usage for health output.
func (l *ScanLimiter) Status() ScanLimiterStatus {
	return ScanLimiterStatus{
		Active:        l.ActiveCount(),
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
