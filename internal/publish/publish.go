// Package publish writes every artefact of a finished benchmark run.
package publish

import (
	"fmt"
	"log"

	"FundBench/internal/metrics"
	"FundBench/internal/model"
	"FundBench/internal/plot"
	"FundBench/internal/report"
)

// Options selects the outputs written after a run.
type Options struct {
	Dir         string
	Prefix      string
	Stats       report.StatSet
	Plot        bool
	MetricsPath string // empty disables the textfile export
}

// Write stores the .dat files, then the optional plots and metrics textfile.
// It returns the paths it created.
func Write(rep *model.Report, opts Options) ([]string, error) {
	paths, err := report.WriteAll(rep, report.Options{Dir: opts.Dir, Prefix: opts.Prefix, Stats: opts.Stats})
	if err != nil {
		return paths, fmt.Errorf("write reports: %w", err)
	}
	for _, p := range paths {
		log.Printf("[INFO] wrote %s", p)
	}

	if opts.Plot {
		if len(rep.Rows) == 0 || len(rep.Methods) == 0 {
			log.Println("[WARN] nothing to plot, skipping charts")
		} else {
			images, err := plot.RenderAll(rep, opts.Dir, opts.Prefix)
			if err != nil {
				return append(paths, images...), fmt.Errorf("render plots: %w", err)
			}
			for _, p := range images {
				log.Printf("[INFO] wrote %s", p)
			}
			paths = append(paths, images...)
		}
	}

	if opts.MetricsPath != "" {
		exp := metrics.NewExporter()
		exp.Observe(rep)
		if err := exp.WriteTextfile(opts.MetricsPath); err != nil {
			return paths, err
		}
		log.Printf("[INFO] wrote %s", opts.MetricsPath)
		paths = append(paths, opts.MetricsPath)
	}
	return paths, nil
}
