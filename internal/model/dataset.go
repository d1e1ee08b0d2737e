package model

import (
	"fmt"
	"strings"
)

// MonthDate counts months since year 0: year*12 + (month-1).
type MonthDate int

// NewMonthDate builds a MonthDate from a calendar year and a 1-based month.
func NewMonthDate(year, month int) MonthDate {
	return MonthDate(year*12 + month - 1)
}

func (d MonthDate) Year() int  { return int(d) / 12 }
func (d MonthDate) Month() int { return int(d)%12 + 1 }

// String renders the date the way the solvers read it, always on the first day.
func (d MonthDate) String() string {
	return fmt.Sprintf("01/%d/%d", d.Month(), d.Year())
}

// ParseMonthDate decodes a "dd/mm/yyyy" string. The day is ignored.
func ParseMonthDate(s string) (MonthDate, error) {
	var day, month, year int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d/%d/%d", &day, &month, &year); err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("parse date %q: month out of range", s)
	}
	return NewMonthDate(year, month), nil
}

// Source is a funding source available for allocation.
type Source struct {
	ID           int
	StartDate    MonthDate
	Tenor        int // months
	Amount       int
	InterestRate float64
}

// EndDate is the first month after the source's tenor.
func (s Source) EndDate() MonthDate { return s.StartDate + MonthDate(s.Tenor) }

// Requirement is an amount that must be funded for a period.
type Requirement struct {
	ID        int
	StartDate MonthDate
	Tenor     int // months
	Amount    int
}

func (r Requirement) EndDate() MonthDate { return r.StartDate + MonthDate(r.Tenor) }

// BalancePool is a pool of money that can back any requirement.
type BalancePool struct {
	ID               int
	TotalAllocatable float64
}

// Dataset is one synthetic allocation problem.
type Dataset struct {
	Name         string
	Sources      []Source
	Requirements []Requirement
	BalancePools []BalancePool
}
