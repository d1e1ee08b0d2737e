package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"FundBench/internal/model"
)

// PrintSummary writes a table of every (dataset, method) pair.
func PrintSummary(w io.Writer, rep *model.Report) error {
	fitPrec := MetricFitness.precision(rep.Normalized)
	allocPrec := MetricAllocations.precision(rep.Normalized)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Dataset\tMethod\tValid\tFitness(avg)\tFitness(min..max)\tAllocs(avg)\tRuntime(s)\n")
	fmt.Fprint(tw, "-------\t------\t-----\t------------\t-----------------\t-----------\t----------\n")
	for _, row := range rep.Rows {
		for _, s := range row.Summaries {
			fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s..%s\t%s\t%s\n",
				row.Dataset,
				s.Method,
				s.ValidRuns, s.Runs,
				FormatValue(s.Fitness.Avg, fitPrec),
				FormatValue(s.Fitness.Min, fitPrec),
				FormatValue(s.Fitness.Max, fitPrec),
				FormatValue(s.Allocations.Avg, allocPrec),
				FormatValue(s.Runtime.Avg, 3),
			)
		}
	}
	return tw.Flush()
}
