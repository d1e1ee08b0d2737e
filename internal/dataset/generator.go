package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"FundBench/internal/model"
)

// GenerateParams controls the shape of a synthetic dataset.
type GenerateParams struct {
	Name             string
	SourceCount      int
	RequirementCount int
	PoolCount        int
	DurationMonths   int
	MaxTenor         int
	StartYear        int
	MinAmount        int
	MaxAmount        int
	AmountStep       int
	MinRate          float64
	MaxRate          float64
}

// DefaultParams returns the parameters the generator has always shipped with.
func DefaultParams() GenerateParams {
	return GenerateParams{
		Name:             "DSg_6",
		SourceCount:      80,
		RequirementCount: 80,
		PoolCount:        2,
		DurationMonths:   24,
		MaxTenor:         24,
		StartYear:        2015,
		MinAmount:        500,
		MaxAmount:        5000,
		AmountStep:       50,
		MinRate:          0.07,
		MaxRate:          0.12,
	}
}

// Validate checks that the parameters describe a generatable dataset.
func (p GenerateParams) Validate() error {
	if p.Name == "" {
		return errors.New("dataset name is required")
	}
	if p.SourceCount <= 0 || p.RequirementCount <= 0 || p.PoolCount <= 0 {
		return errors.New("record counts must be positive")
	}
	if p.DurationMonths <= 0 {
		return errors.New("duration must be positive")
	}
	if p.MaxTenor <= 0 {
		return errors.New("max tenor must be positive")
	}
	if p.AmountStep <= 0 {
		return errors.New("amount step must be positive")
	}
	if p.MinAmount > p.MaxAmount {
		return fmt.Errorf("min amount %d exceeds max amount %d", p.MinAmount, p.MaxAmount)
	}
	if (p.MaxAmount-p.MinAmount)%p.AmountStep != 0 {
		return fmt.Errorf("amount range %d..%d is not a multiple of step %d", p.MinAmount, p.MaxAmount, p.AmountStep)
	}
	if p.MinRate > p.MaxRate {
		return fmt.Errorf("min rate %.2f exceeds max rate %.2f", p.MinRate, p.MaxRate)
	}
	return nil
}

// WindowStart is the first month a record may start in.
func (p GenerateParams) WindowStart() model.MonthDate {
	return model.NewMonthDate(p.StartYear, 1)
}

// WindowEnd is the first month after the generation window.
func (p GenerateParams) WindowEnd() model.MonthDate {
	return p.WindowStart() + model.MonthDate(p.DurationMonths)
}

// EffectiveMaxTenor clamps the configured max tenor to the window length.
func (p GenerateParams) EffectiveMaxTenor() int {
	return min(p.MaxTenor, p.DurationMonths)
}

// Generate draws a random dataset. The shape is fixed by params, values come from rng.
func Generate(params GenerateParams, rng *rand.Rand) (*model.Dataset, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	ds := &model.Dataset{
		Name:         params.Name,
		Sources:      make([]model.Source, 0, params.SourceCount),
		Requirements: make([]model.Requirement, 0, params.RequirementCount),
		BalancePools: make([]model.BalancePool, 0, params.PoolCount),
	}

	for i := 0; i < params.SourceCount; i++ {
		start, tenor := drawPeriod(params, rng)
		ds.Sources = append(ds.Sources, model.Source{
			ID:           i + 1,
			StartDate:    start,
			Tenor:        tenor,
			Amount:       drawAmount(params, rng),
			InterestRate: drawRate(params, rng),
		})
	}

	for i := 0; i < params.RequirementCount; i++ {
		start, tenor := drawPeriod(params, rng)
		ds.Requirements = append(ds.Requirements, model.Requirement{
			ID:        i + 1,
			StartDate: start,
			Tenor:     tenor,
			Amount:    drawAmount(params, rng),
		})
	}

	for i := 0; i < params.PoolCount; i++ {
		ds.BalancePools = append(ds.BalancePools, model.BalancePool{
			ID:               i + 1,
			TotalAllocatable: float64(10 * drawAmount(params, rng)),
		})
	}

	return ds, nil
}

// drawPeriod picks a start month inside the window and a tenor that ends by the window end.
func drawPeriod(p GenerateParams, rng *rand.Rand) (model.MonthDate, int) {
	start := p.WindowStart() + model.MonthDate(rng.IntN(p.DurationMonths))
	remaining := int(p.WindowEnd() - start)
	tenor := 1 + rng.IntN(remaining)
	return start, min(p.EffectiveMaxTenor(), tenor)
}

func drawAmount(p GenerateParams, rng *rand.Rand) int {
	steps := (p.MaxAmount - p.MinAmount) / p.AmountStep
	return p.MinAmount + p.AmountStep*rng.IntN(steps+1)
}

func drawRate(p GenerateParams, rng *rand.Rand) float64 {
	r := p.MinRate + rng.Float64()*(p.MaxRate-p.MinRate)
	return math.Round(r*100) / 100
}
