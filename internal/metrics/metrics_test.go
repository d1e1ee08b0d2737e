package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"FundBench/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Methods:  []string{"heuristic", "pso"},
		Datasets: []string{"DSg_1"},
		Rows: []model.Row{{
			Dataset: "DSg_1",
			Summaries: []model.Summary{
				{
					Dataset: "DSg_1", Method: "heuristic", Runs: 3, ValidRuns: 3,
					Fitness:     model.Stat{Min: 10, Max: 30, Avg: 20},
					Allocations: model.SentinelStat(),
					Runtime:     model.Stat{Min: 1, Max: 2, Avg: 1.5},
				},
				{
					Dataset: "DSg_1", Method: "pso", Runs: 3, ValidRuns: 0,
					Fitness:     model.SentinelStat(),
					Allocations: model.SentinelStat(),
					Runtime:     model.Stat{Min: 4, Max: 4, Avg: 4},
				},
			},
		}},
	}
}

func TestObserve(t *testing.T) {
	e := NewExporter()
	e.Observe(sampleReport())

	if got := testutil.ToFloat64(e.Fitness.WithLabelValues("DSg_1", "heuristic", "avg")); got != 20 {
		t.Errorf("fitness avg: expected 20, got %v", got)
	}
	if got := testutil.ToFloat64(e.Runtime.WithLabelValues("DSg_1", "pso", "max")); got != 4 {
		t.Errorf("runtime max: expected 4, got %v", got)
	}
	if got := testutil.ToFloat64(e.ValidRuns.WithLabelValues("DSg_1", "pso")); got != 0 {
		t.Errorf("valid runs: expected 0, got %v", got)
	}
	// heuristic fitness has 3 series, pso fitness is sentinel and skipped
	if got := testutil.CollectAndCount(e.Fitness); got != 3 {
		t.Errorf("fitness series: expected 3, got %d", got)
	}
	if got := testutil.CollectAndCount(e.Allocations); got != 0 {
		t.Errorf("allocation series: expected 0, got %d", got)
	}
}

func TestObserveResetsPreviousRun(t *testing.T) {
	e := NewExporter()
	e.Observe(sampleReport())
	e.Observe(&model.Report{})

	if got := testutil.CollectAndCount(e.Runtime); got != 0 {
		t.Errorf("runtime series after empty report: expected 0, got %d", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	e := NewExporter()
	e.Observe(sampleReport())

	path := filepath.Join(t.TempDir(), "fundbench.prom")
	if err := e.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"# TYPE fundbench_fitness gauge",
		`fundbench_fitness{dataset="DSg_1",method="heuristic",stat="avg"} 20`,
		`fundbench_valid_runs{dataset="DSg_1",method="heuristic"} 3`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q:\n%s", want, text)
		}
	}
}
