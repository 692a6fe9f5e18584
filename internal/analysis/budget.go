package analysis

import (
	"fmt"
	"sync/atomic"
	"time"
)

// AnalysisTimeoutError is returned once an analysis exceeds its wall-clock budget.
type AnalysisTimeoutError struct {
	BudgetMs int64
}

func (e *AnalysisTimeoutError) Error() string {
	return fmt.Sprintf("analysis timed out: processing exceeded %dms", e.BudgetMs)
}

// ContentTooLargeError is returned when a payload exceeds the size ceiling
// for budgeted analysis.
type ContentTooLargeError struct {
	Size  int
	Limit int
}

func (e *ContentTooLargeError) Error() string {
	return fmt.Sprintf("content too large: size %d exceeds limit %d", e.Size, e.Limit)
}

// Stats holds process-wide analysis counters. Increments are atomic so the
// counters stay consistent if the host ever runs independent analyses in
// parallel; they reset only on process restart.
type Stats struct {
	analyses atomic.Uint64
	totalMs  atomic.Uint64
}

// AnalysisCount returns the number of completed analyses.
func (s *Stats) AnalysisCount() uint64 {
	return s.analyses.Load()
}

// AverageTimeMs returns the mean wall-clock time of completed analyses.
func (s *Stats) AverageTimeMs() float64 {
	count := s.analyses.Load()
	if count == 0 {
		return 0
	}
	return float64(s.totalMs.Load()) / float64(count)
}

func (s *Stats) record(elapsed time.Duration) {
	s.analyses.Add(1)
	s.totalMs.Add(uint64(elapsed.Milliseconds()))
}

// Budget tracks elapsed time and enforces the content-size ceiling for a
// single analysis invocation. Cancellation is strictly cooperative: every
// unbounded loop downstream must poll CheckTimeout, because nothing here
// preempts a loop that fails to check.
type Budget struct {
	start          time.Time
	timeout        time.Duration
	maxContentSize int
	stats          *Stats
}

// NewBudget creates a budget starting now. stats may be nil.
func NewBudget(timeout time.Duration, maxContentSize int, stats *Stats) *Budget {
	return &Budget{
		start:          time.Now(),
		timeout:        timeout,
		maxContentSize: maxContentSize,
		stats:          stats,
	}
}

// CheckTimeout fails once wall-clock time since construction exceeds the budget.
func (b *Budget) CheckTimeout() error {
	if time.Since(b.start) > b.timeout {
		return &AnalysisTimeoutError{BudgetMs: b.timeout.Milliseconds()}
	}
	return nil
}

// CheckContentSize fails if the content exceeds the configured ceiling.
func (b *Budget) CheckContentSize(content string) error {
	if len(content) > b.maxContentSize {
		return &ContentTooLargeError{Size: len(content), Limit: b.maxContentSize}
	}
	return nil
}

// RemainingMs reports how much of the budget is left, for diagnostics.
func (b *Budget) RemainingMs() int64 {
	elapsed := time.Since(b.start)
	if elapsed >= b.timeout {
		return 0
	}
	return (b.timeout - elapsed).Milliseconds()
}

// RecordCompletion folds this invocation's elapsed time into the shared counters.
func (b *Budget) RecordCompletion() {
	if b.stats != nil {
		b.stats.record(time.Since(b.start))
	}
}
