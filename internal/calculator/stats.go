package calculator

import (
	"errors"
	"math"

	"FundBench/internal/model"
)

// ErrNoValues is returned when there is nothing to aggregate.
var ErrNoValues = errors.New("no values to aggregate")

// CalculateMean computes the arithmetic mean of values.
func CalculateMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// CalculateRange returns the highest and lowest of values.
func CalculateRange(values []float64) (high, low float64, err error) {
	if len(values) == 0 {
		return 0, 0, ErrNoValues
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low, nil
}

// Aggregate computes min, max and average of values.
func Aggregate(values []float64) (model.Stat, error) {
	avg, err := CalculateMean(values)
	if err != nil {
		return model.SentinelStat(), err
	}
	high, low, err := CalculateRange(values)
	if err != nil {
		return model.SentinelStat(), err
	}
	return model.Stat{Min: low, Max: high, Avg: avg}, nil
}

// aggregateOrSentinel is Aggregate for callers that treat an empty set as "no data".
func aggregateOrSentinel(values []float64) model.Stat {
	st, err := Aggregate(values)
	if err != nil {
		return model.SentinelStat()
	}
	return st
}

// scale divides every field of s by d, keeping the sentinel intact.
func scale(s model.Stat, d float64) model.Stat {
	if s.IsSentinel() || d <= 0 {
		return model.SentinelStat()
	}
	return model.Stat{Min: s.Min / d, Max: s.Max / d, Avg: s.Avg / d}
}
