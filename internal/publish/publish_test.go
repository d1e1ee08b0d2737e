package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"FundBench/internal/model"
	"FundBench/internal/report"
)

func sampleReport() *model.Report {
	return &model.Report{
		Methods:  []string{"heuristic"},
		Datasets: []string{"DSg_1"},
		Rows: []model.Row{{
			Dataset: "DSg_1",
			Summaries: []model.Summary{{
				Dataset: "DSg_1", Method: "heuristic", Runs: 1, ValidRuns: 1,
				Fitness:     model.Stat{Min: 5, Max: 5, Avg: 5},
				Allocations: model.Stat{Min: 2, Max: 2, Avg: 2},
				Runtime:     model.Stat{Min: 0.1, Max: 0.1, Avg: 0.1},
			}},
		}},
	}
}

func TestWriteDatOnly(t *testing.T) {
	dir := t.TempDir()
	paths, err := Write(sampleReport(), Options{Dir: dir, Prefix: "cmp", Stats: report.StatsAvg})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths: expected 3, got %d (%v)", len(paths), paths)
	}
	data, err := os.ReadFile(filepath.Join(dir, "cmp_fitness.dat"))
	if err != nil {
		t.Fatalf("read fitness: %v", err)
	}
	if string(data) != "Dataset heuristic\nDSg_1 5.00\n" {
		t.Errorf("fitness.dat: unexpected %q", data)
	}
}

func TestWriteEverything(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "fundbench.prom")
	paths, err := Write(sampleReport(), Options{
		Dir: dir, Prefix: "cmp", Stats: report.StatsMinMaxAvg, Plot: true, MetricsPath: metricsPath,
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(paths) != 7 {
		t.Fatalf("paths: expected 7, got %d (%v)", len(paths), paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	prom, _ := os.ReadFile(metricsPath)
	if !strings.Contains(string(prom), "fundbench_fitness") {
		t.Errorf("metrics textfile missing fitness gauge:\n%s", prom)
	}
}

func TestWriteSkipsPlotsForEmptyReport(t *testing.T) {
	paths, err := Write(&model.Report{}, Options{Dir: t.TempDir(), Prefix: "cmp", Stats: report.StatsAvg, Plot: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("paths: expected only the 3 .dat files, got %v", paths)
	}
}
