package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"FundBench/internal/model"
)

var (
	sourceHeader = []string{
		"Id", "Segment", "Start Date", "Tenor", "Amount",
		"Source Type", "Source Type Category", "Tax Class", "InterestRate",
	}
	requirementHeader = []string{
		"Id", "Segment", "Start Date", "Tenor", "Amount", "Tier", "Purpose", "Tax Class",
	}
	balancePoolHeader = []string{
		"Id", "Segment", "BalancePoolId", "Recorded Date", "Name", "Recorded Amount",
		"Loaned Amount on Recorded Date", "Total Amount", "Limit Percentage", "Total Allocatable Amount",
	}
)

func SourcesPath(dir, name string) string {
	return filepath.Join(dir, name+"_sources.csv")
}

func RequirementsPath(dir, name string) string {
	return filepath.Join(dir, name+"_requirements.csv")
}

func BalancePoolsPath(dir, name string) string {
	return filepath.Join(dir, name+"_balancepools.csv")
}

// Write stores ds as three CSV files in dir, creating dir if needed.
func Write(dir string, ds *model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	srcRows := make([][]string, 0, len(ds.Sources))
	for _, s := range ds.Sources {
		srcRows = append(srcRows, []string{
			strconv.Itoa(s.ID), "", s.StartDate.String(),
			strconv.Itoa(s.Tenor), strconv.Itoa(s.Amount),
			"", "", "", strconv.FormatFloat(s.InterestRate, 'f', 2, 64),
		})
	}
	if err := writeCSV(SourcesPath(dir, ds.Name), sourceHeader, srcRows); err != nil {
		return err
	}

	reqRows := make([][]string, 0, len(ds.Requirements))
	for _, r := range ds.Requirements {
		reqRows = append(reqRows, []string{
			strconv.Itoa(r.ID), "", r.StartDate.String(),
			strconv.Itoa(r.Tenor), strconv.Itoa(r.Amount),
			"", "", "",
		})
	}
	if err := writeCSV(RequirementsPath(dir, ds.Name), requirementHeader, reqRows); err != nil {
		return err
	}

	bplRows := make([][]string, 0, len(ds.BalancePools))
	for _, b := range ds.BalancePools {
		bplRows = append(bplRows, []string{
			strconv.Itoa(b.ID), "", "", "", "", "", "", "", "",
			strconv.FormatFloat(b.TotalAllocatable, 'f', 1, 64),
		})
	}
	return writeCSV(BalancePoolsPath(dir, ds.Name), balancePoolHeader, bplRows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
