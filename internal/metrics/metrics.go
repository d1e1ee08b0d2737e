// Package metrics exposes benchmark summaries as Prometheus gauges.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"FundBench/internal/model"
)

// Exporter holds one gauge family per summary quantity on a private registry.
type Exporter struct {
	Registry    *prometheus.Registry
	Fitness     *prometheus.GaugeVec
	Allocations *prometheus.GaugeVec
	Runtime     *prometheus.GaugeVec
	ValidRuns   *prometheus.GaugeVec
}

// NewExporter creates and registers the gauges.
func NewExporter() *Exporter {
	labels := []string{"dataset", "method", "stat"}
	e := &Exporter{
		Registry: prometheus.NewRegistry(),
		Fitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fundbench_fitness",
			Help: "Solver fitness per dataset and method.",
		}, labels),
		Allocations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fundbench_allocations",
			Help: "Number of allocations reported by the solver.",
		}, labels),
		Runtime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fundbench_runtime_seconds",
			Help: "Wall-clock solver runtime in seconds.",
		}, labels),
		ValidRuns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fundbench_valid_runs",
			Help: "Iterations that produced a positive fitness.",
		}, []string{"dataset", "method"}),
	}
	e.Registry.MustRegister(e.Fitness, e.Allocations, e.Runtime, e.ValidRuns)
	return e
}

// Observe replaces all gauge values with the contents of rep.
// Sentinel statistics are left out rather than exported as -1.
func (e *Exporter) Observe(rep *model.Report) {
	e.Fitness.Reset()
	e.Allocations.Reset()
	e.Runtime.Reset()
	e.ValidRuns.Reset()

	for _, row := range rep.Rows {
		for _, s := range row.Summaries {
			setStat(e.Fitness, row.Dataset, s.Method, s.Fitness)
			setStat(e.Allocations, row.Dataset, s.Method, s.Allocations)
			setStat(e.Runtime, row.Dataset, s.Method, s.Runtime)
			e.ValidRuns.WithLabelValues(row.Dataset, s.Method).Set(float64(s.ValidRuns))
		}
	}
}

func setStat(g *prometheus.GaugeVec, dataset, method string, st model.Stat) {
	if st.IsSentinel() {
		return
	}
	g.WithLabelValues(dataset, method, "min").Set(st.Min)
	g.WithLabelValues(dataset, method, "max").Set(st.Max)
	g.WithLabelValues(dataset, method, "avg").Set(st.Avg)
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
