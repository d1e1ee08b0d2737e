package model

import "time"

// SentinelValue marks a statistic for which no valid run exists.
const SentinelValue = -1.0

// RunResult is the outcome of a single solver invocation.
type RunResult struct {
	Dataset        string
	Method         string
	Iteration      int
	Fitness        float64
	Allocations    int
	HasAllocations bool // false for solvers that only print the final fitness
	Runtime        time.Duration
}

// Valid reports whether the run produced a usable solution.
func (r RunResult) Valid() bool { return r.Fitness > 0 }

// Stat holds min/max/avg over the valid runs of one metric.
type Stat struct {
	Min float64
	Max float64
	Avg float64
}

// SentinelStat is the Stat reported when there is nothing to aggregate.
func SentinelStat() Stat {
	return Stat{Min: SentinelValue, Max: SentinelValue, Avg: SentinelValue}
}

// IsSentinel reports whether s carries no data.
func (s Stat) IsSentinel() bool { return s.Avg == SentinelValue }

// Summary aggregates all iterations of one (dataset, method) pair.
type Summary struct {
	Dataset          string
	Method           string
	Runs             int
	ValidRuns        int
	Fitness          Stat
	Allocations      Stat
	Runtime          Stat // seconds
	Baseline         float64
	RequirementCount int
	Normalized       bool
}

// Row holds the summaries of one dataset, one per method in report order.
type Row struct {
	Dataset   string
	Summaries []Summary
}

// Report is the outcome of a full benchmark run.
type Report struct {
	Methods    []string
	Datasets   []string
	Normalized bool
	Rows       []Row
	StartedAt  time.Time
	FinishedAt time.Time
}
