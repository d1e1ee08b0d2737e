package recorder

import "FundBench/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *model.RunResult) error             { return nil }
func (n *NoopRecorder) RecordSummary(_ *model.Summary) error           { return nil }
func (n *NoopRecorder) RecordGeneration(_ *GenerationEvent) error      { return nil }
func (n *NoopRecorder) LatestSummaries(_ int) ([]model.Summary, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                   { return nil }
