package calculator

import "FundBench/internal/model"

// Summarize folds the iterations of one (dataset, method) pair into a Summary.
// Runs with non-positive fitness are left out of every statistic. When no run
// is valid all statistics carry model.SentinelValue.
func Summarize(dataset, method string, results []model.RunResult) model.Summary {
	sum := model.Summary{
		Dataset: dataset,
		Method:  method,
		Runs:    len(results),
	}

	var fitness, allocs, runtimes []float64
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		sum.ValidRuns++
		fitness = append(fitness, r.Fitness)
		runtimes = append(runtimes, r.Runtime.Seconds())
		if r.HasAllocations {
			allocs = append(allocs, float64(r.Allocations))
		}
	}

	sum.Fitness = aggregateOrSentinel(fitness)
	sum.Allocations = aggregateOrSentinel(allocs)
	sum.Runtime = aggregateOrSentinel(runtimes)
	return sum
}

// Normalize rescales fitness against the baseline fitness and allocation
// counts against the number of requirements. Runtime is left as measured.
func Normalize(sum model.Summary, baseline float64, requirementCount int) model.Summary {
	out := sum
	out.Baseline = baseline
	out.RequirementCount = requirementCount
	out.Normalized = true
	out.Fitness = scale(sum.Fitness, baseline)
	out.Allocations = scale(sum.Allocations, float64(requirementCount))
	return out
}
