package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"FundBench/internal/model"
)

// Mode selects whether values are written as measured or relative to the baseline.
type Mode string

const (
	ModeRaw        Mode = "raw"
	ModeNormalized Mode = "normalized"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRaw, ModeNormalized:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown report mode %q (want raw or normalized)", s)
	}
}

// StatSet selects which statistics become columns.
type StatSet string

const (
	StatsAvg       StatSet = "avg"
	StatsMinMaxAvg StatSet = "minmaxavg"
)

// ParseStatSet validates a statistic set name.
func ParseStatSet(s string) (StatSet, error) {
	switch StatSet(s) {
	case StatsAvg, StatsMinMaxAvg:
		return StatSet(s), nil
	default:
		return "", fmt.Errorf("unknown stat set %q (want avg or minmaxavg)", s)
	}
}

// Metric is one measured quantity of a summary.
type Metric string

const (
	MetricFitness     Metric = "fitness"
	MetricAllocations Metric = "allocations"
	MetricRuntime     Metric = "runtime"
)

// Metrics lists every metric in file order.
var Metrics = []Metric{MetricFitness, MetricAllocations, MetricRuntime}

// Of returns the statistic of s for m.
func (m Metric) Of(s model.Summary) model.Stat {
	switch m {
	case MetricAllocations:
		return s.Allocations
	case MetricRuntime:
		return s.Runtime
	default:
		return s.Fitness
	}
}

func (m Metric) precision(normalized bool) int {
	switch {
	case m == MetricRuntime:
		return 3
	case normalized:
		return 4
	default:
		return 2
	}
}

// Options controls where and how .dat files are written.
type Options struct {
	Dir    string
	Prefix string
	Stats  StatSet
}

// Path returns the file a metric is written to.
func (o Options) Path(m Metric) string {
	return filepath.Join(o.Dir, fmt.Sprintf("%s_%s.dat", o.Prefix, m))
}

// WriteAll writes one .dat file per metric and returns their paths.
func WriteAll(rep *model.Report, opts Options) ([]string, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(Metrics))
	for _, m := range Metrics {
		path := opts.Path(m)
		if err := writeFile(path, rep, m, opts.Stats); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, rep *model.Report, m Metric, stats StatSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteMetric(f, rep, m, stats); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteMetric writes a header row of method labels, then one line per dataset.
func WriteMetric(w io.Writer, rep *model.Report, m Metric, stats StatSet) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("Dataset")
	for _, method := range rep.Methods {
		if stats == StatsMinMaxAvg {
			fmt.Fprintf(bw, " %s_min %s_max %s_avg", method, method, method)
		} else {
			fmt.Fprintf(bw, " %s", method)
		}
	}
	bw.WriteString("\n")

	prec := m.precision(rep.Normalized)
	for _, row := range rep.Rows {
		bw.WriteString(row.Dataset)
		for _, s := range row.Summaries {
			st := m.Of(s)
			if stats == StatsMinMaxAvg {
				fmt.Fprintf(bw, " %s %s %s", FormatValue(st.Min, prec), FormatValue(st.Max, prec), FormatValue(st.Avg, prec))
			} else {
				fmt.Fprintf(bw, " %s", FormatValue(st.Avg, prec))
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// FormatValue renders v with prec decimals, and the sentinel as a bare -1.
func FormatValue(v float64, prec int) string {
	if v == model.SentinelValue {
		return "-1"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
