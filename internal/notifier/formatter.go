package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"FundBench/internal/model"
	"FundBench/internal/report"
)

// FormatBenchmarkReport formats a finished benchmark into a Telegram message.
func FormatBenchmarkReport(rep *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>FundBench report</b> | %s\n", rep.FinishedAt.Format("2006-01-02 15:04")))
	mode := "raw"
	if rep.Normalized {
		mode = "normalized"
	}
	b.WriteString(fmt.Sprintf("Mode: %s | Duration: %s\n", mode, rep.FinishedAt.Sub(rep.StartedAt).Round(time.Second)))

	if len(rep.Rows) == 0 {
		b.WriteString("\nNo dataset/method pair could be run.\n")
		return b.String()
	}

	fitPrec := 2
	if rep.Normalized {
		fitPrec = 4
	}
	for _, row := range rep.Rows {
		b.WriteString(fmt.Sprintf("\n📁 <b>%s</b>\n", html.EscapeString(row.Dataset)))
		best := bestMethod(row)
		for _, s := range row.Summaries {
			mark := ""
			if s.Method == best {
				mark = " 🏆"
			}
			b.WriteString(fmt.Sprintf("  %s: %s (%d/%d valid, %ss)%s\n",
				html.EscapeString(s.Method),
				report.FormatValue(s.Fitness.Avg, fitPrec),
				s.ValidRuns, s.Runs,
				report.FormatValue(s.Runtime.Avg, 3),
				mark))
		}
	}
	return b.String()
}

// FormatLatest formats summaries loaded from the history database.
func FormatLatest(sums []model.Summary) string {
	if len(sums) == 0 {
		return "📦 No benchmark history yet."
	}
	var b strings.Builder
	b.WriteString("📦 <b>Latest summaries</b>\n\n")
	for _, s := range sums {
		prec := 2
		if s.Normalized {
			prec = 4
		}
		b.WriteString(fmt.Sprintf("%s / %s: %s (min %s, max %s, %d/%d valid)\n",
			html.EscapeString(s.Dataset), html.EscapeString(s.Method),
			report.FormatValue(s.Fitness.Avg, prec),
			report.FormatValue(s.Fitness.Min, prec),
			report.FormatValue(s.Fitness.Max, prec),
			s.ValidRuns, s.Runs))
	}
	return b.String()
}

// FormatFailure formats an aborted benchmark run.
func FormatFailure(err error) string {
	return fmt.Sprintf("❌ <b>Benchmark failed</b>\n\n%s", html.EscapeString(err.Error()))
}

// HelpText lists the supported commands.
func HelpText() string {
	return "Available commands:\n• /run - run the configured benchmark now\n• /latest - show the latest summaries"
}

// bestMethod returns the method with the highest valid average fitness in row.
func bestMethod(row model.Row) string {
	best, bestFit := "", 0.0
	for _, s := range row.Summaries {
		if s.Fitness.IsSentinel() {
			continue
		}
		if best == "" || s.Fitness.Avg > bestFit {
			best, bestFit = s.Method, s.Fitness.Avg
		}
	}
	return best
}
