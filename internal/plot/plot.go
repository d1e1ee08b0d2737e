// Package plot renders report metrics as grouped bar charts.
package plot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"FundBench/internal/model"
	"FundBench/internal/report"
)

// ErrEmptyReport is returned when a report has no dataset or method to draw.
var ErrEmptyReport = errors.New("report has nothing to plot")

// groupWidth is the width of one dataset's group of bars.
const groupWidth = 48

// RenderMetric draws the average of metric m for every (dataset, method) pair
// and saves it to path. The image format follows the file extension.
func RenderMetric(rep *model.Report, m report.Metric, path string) error {
	if len(rep.Rows) == 0 || len(rep.Methods) == 0 {
		return ErrEmptyReport
	}

	p := gplot.New()
	p.Title.Text = title(rep, m)
	p.Y.Label.Text = axisLabel(rep, m)
	p.X.Label.Text = "Dataset"

	n := len(rep.Methods)
	w := vg.Points(groupWidth / float64(n))
	for i, method := range rep.Methods {
		values := make(plotter.Values, len(rep.Rows))
		for j, row := range rep.Rows {
			values[j] = barValue(m.Of(row.Summaries[i]))
		}
		bars, err := plotter.NewBarChart(values, w)
		if err != nil {
			return fmt.Errorf("bars for %s: %w", method, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(float64(i)-float64(n-1)/2)

		p.Add(bars)
		p.Legend.Add(method, bars)
	}
	p.Legend.Top = true

	names := make([]string, len(rep.Rows))
	for j, row := range rep.Rows {
		names[j] = row.Dataset
	}
	p.NominalX(names...)

	width := vg.Length(len(rep.Rows))*vg.Points(groupWidth*1.5) + 2*vg.Inch
	if width < 6*vg.Inch {
		width = 6 * vg.Inch
	}
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// RenderAll writes <prefix>_<metric>.png for every metric into dir.
func RenderAll(rep *model.Report, dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}
	var paths []string
	for _, m := range report.Metrics {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, m))
		if err := RenderMetric(rep, m, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// barValue draws sentinel statistics as empty bars.
func barValue(st model.Stat) float64 {
	if st.IsSentinel() {
		return 0
	}
	return st.Avg
}

func title(rep *model.Report, m report.Metric) string {
	if rep.Normalized && m != report.MetricRuntime {
		return fmt.Sprintf("Average %s (normalized)", m)
	}
	return fmt.Sprintf("Average %s", m)
}

func axisLabel(rep *model.Report, m report.Metric) string {
	switch {
	case m == report.MetricRuntime:
		return "seconds"
	case rep.Normalized && m == report.MetricFitness:
		return "fitness / baseline"
	case rep.Normalized:
		return "allocations / requirements"
	case m == report.MetricAllocations:
		return "allocations"
	default:
		return "fitness"
	}
}
