package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"FundBench/internal/model"
)

// Exists reports whether the requirements file for name is present in dir.
// The requirements table is the one every solver needs.
func Exists(dir, name string) bool {
	info, err := os.Stat(RequirementsPath(dir, name))
	return err == nil && !info.IsDir()
}

// Load reads all three tables of a dataset.
func Load(dir, name string) (*model.Dataset, error) {
	sources, err := LoadSources(SourcesPath(dir, name))
	if err != nil {
		return nil, err
	}
	reqs, err := LoadRequirements(RequirementsPath(dir, name))
	if err != nil {
		return nil, err
	}
	pools, err := LoadBalancePools(BalancePoolsPath(dir, name))
	if err != nil {
		return nil, err
	}
	return &model.Dataset{Name: name, Sources: sources, Requirements: reqs, BalancePools: pools}, nil
}

// RequirementCount returns the number of requirement records of a dataset.
func RequirementCount(dir, name string) (int, error) {
	rows, err := readRows(RequirementsPath(dir, name), len(requirementHeader))
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func LoadSources(path string) ([]model.Source, error) {
	rows, err := readRows(path, len(sourceHeader))
	if err != nil {
		return nil, err
	}
	out := make([]model.Source, 0, len(rows))
	for i, row := range rows {
		var s model.Source
		p := fieldParser{path: path, line: i + 2, row: row}
		s.ID = p.id(0, i+1)
		s.StartDate = p.date(2)
		s.Tenor = p.atoi(3)
		s.Amount = p.atoi(4)
		s.InterestRate = p.atof(8)
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, s)
	}
	return out, nil
}

func LoadRequirements(path string) ([]model.Requirement, error) {
	rows, err := readRows(path, len(requirementHeader))
	if err != nil {
		return nil, err
	}
	out := make([]model.Requirement, 0, len(rows))
	for i, row := range rows {
		var r model.Requirement
		p := fieldParser{path: path, line: i + 2, row: row}
		r.ID = p.id(0, i+1)
		r.StartDate = p.date(2)
		r.Tenor = p.atoi(3)
		r.Amount = p.atoi(4)
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, r)
	}
	return out, nil
}

func LoadBalancePools(path string) ([]model.BalancePool, error) {
	rows, err := readRows(path, len(balancePoolHeader))
	if err != nil {
		return nil, err
	}
	out := make([]model.BalancePool, 0, len(rows))
	for i, row := range rows {
		var b model.BalancePool
		p := fieldParser{path: path, line: i + 2, row: row}
		b.ID = p.id(0, i+1)
		b.TotalAllocatable = p.atof(9)
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, b)
	}
	return out, nil
}

// readRows returns every record after the header. Each record needs at least
// width fields; anything beyond width must be empty. Older generators wrote
// one trailing empty field more than the header declares.
func readRows(path string, width int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header", path)
		}
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for i, row := range rows {
		if len(row) < width {
			return nil, fmt.Errorf("%s:%d: expected %d fields, got %d", path, i+2, width, len(row))
		}
		for col, extra := range row[width:] {
			if strings.TrimSpace(extra) != "" {
				return nil, fmt.Errorf("%s:%d: unexpected value %q in column %d", path, i+2, extra, width+col+1)
			}
		}
		rows[i] = row[:width]
	}
	return rows, nil
}

// fieldParser keeps the first conversion error so callers check once per row.
type fieldParser struct {
	path string
	line int
	row  []string
	err  error
}

func (p *fieldParser) fail(col int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s:%d column %d: %w", p.path, p.line, col+1, err)
	}
}

func (p *fieldParser) atoi(col int) int {
	v, err := strconv.Atoi(strings.TrimSpace(p.row[col]))
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) atof(col int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.row[col]), 64)
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) date(col int) model.MonthDate {
	v, err := model.ParseMonthDate(p.row[col])
	if err != nil {
		p.fail(col, err)
	}
	return v
}

func (p *fieldParser) id(col, want int) int {
	v := p.atoi(col)
	if p.err == nil && v != want {
		p.fail(col, fmt.Errorf("expected id %d, got %d", want, v))
	}
	return v
}
