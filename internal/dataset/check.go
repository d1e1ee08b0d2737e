package dataset

import (
	"fmt"

	"FundBench/internal/model"
)

// Check reports every record of ds that falls outside the bounds described by params.
// An empty result means the dataset is consistent with the generator.
func Check(ds *model.Dataset, params GenerateParams) []string {
	var problems []string
	start, end := params.WindowStart(), params.WindowEnd()
	maxTenor := params.EffectiveMaxTenor()

	checkPeriod := func(kind string, id int, date model.MonthDate, tenor int) {
		if date < start || date >= end {
			problems = append(problems, fmt.Sprintf("%s %d: start %s outside window", kind, id, date))
			return
		}
		if tenor < 1 || tenor > maxTenor || tenor > int(end-date) {
			problems = append(problems, fmt.Sprintf("%s %d: tenor %d out of range", kind, id, tenor))
		}
	}
	checkAmount := func(kind string, id, amount int) {
		if !onLattice(params, amount) {
			problems = append(problems, fmt.Sprintf("%s %d: amount %d not on lattice", kind, id, amount))
		}
	}

	for i, s := range ds.Sources {
		if s.ID != i+1 {
			problems = append(problems, fmt.Sprintf("source %d: expected id %d", s.ID, i+1))
		}
		checkPeriod("source", s.ID, s.StartDate, s.Tenor)
		checkAmount("source", s.ID, s.Amount)
		if s.InterestRate < params.MinRate || s.InterestRate > params.MaxRate {
			problems = append(problems, fmt.Sprintf("source %d: rate %.4f out of range", s.ID, s.InterestRate))
		}
	}
	for i, r := range ds.Requirements {
		if r.ID != i+1 {
			problems = append(problems, fmt.Sprintf("requirement %d: expected id %d", r.ID, i+1))
		}
		checkPeriod("requirement", r.ID, r.StartDate, r.Tenor)
		checkAmount("requirement", r.ID, r.Amount)
	}
	for i, b := range ds.BalancePools {
		if b.ID != i+1 {
			problems = append(problems, fmt.Sprintf("balance pool %d: expected id %d", b.ID, i+1))
		}
		amount := int(b.TotalAllocatable)
		if float64(amount) != b.TotalAllocatable || amount%10 != 0 || !onLattice(params, amount/10) {
			problems = append(problems, fmt.Sprintf("balance pool %d: amount %.1f not on lattice", b.ID, b.TotalAllocatable))
		}
	}
	return problems
}

func onLattice(p GenerateParams, amount int) bool {
	return amount >= p.MinAmount && amount <= p.MaxAmount && (amount-p.MinAmount)%p.AmountStep == 0
}
