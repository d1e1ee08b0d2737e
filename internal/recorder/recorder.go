package recorder

import "FundBench/internal/model"

// GenerationEvent records one dataset generator pass.
type GenerationEvent struct {
	Name           string
	Dir            string
	Seed           uint64
	Sources        int
	Requirements   int
	BalancePools   int
	DurationMonths int
	MaxTenor       int
}

// Recorder persists benchmark history for analysis.
type Recorder interface {
	RecordRun(res *model.RunResult) error
	RecordSummary(sum *model.Summary) error
	RecordGeneration(evt *GenerationEvent) error
	// LatestSummaries returns up to limit summaries, newest first.
	LatestSummaries(limit int) ([]model.Summary, error)
	Close() error
}
