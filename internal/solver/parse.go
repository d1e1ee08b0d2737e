package solver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrNoFitness means the solver output carried no recognizable result line.
var ErrNoFitness = errors.New("no fitness line in solver output")

var (
	allocationPattern = regexp.MustCompile(`fitness was (-?\d+\.\d+) from (\d+) allocations`)
	finalPattern      = regexp.MustCompile(`final fitness was (-?\d+\.\d+)`)
)

// Parsed is the result a solver reported on stdout.
type Parsed struct {
	Fitness        float64
	Allocations    int
	HasAllocations bool
}

// ParseOutput extracts fitness and, when present, the allocation count.
// Newer solvers print "fitness was F from N allocations"; older ones only
// "final fitness was F".
func ParseOutput(stdout string) (Parsed, error) {
	if m := allocationPattern.FindStringSubmatch(stdout); m != nil {
		fitness, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Parsed{}, fmt.Errorf("parse fitness %q: %w", m[1], err)
		}
		allocs, err := strconv.Atoi(m[2])
		if err != nil {
			return Parsed{}, fmt.Errorf("parse allocation count %q: %w", m[2], err)
		}
		return Parsed{Fitness: fitness, Allocations: allocs, HasAllocations: true}, nil
	}
	if m := finalPattern.FindStringSubmatch(stdout); m != nil {
		fitness, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Parsed{}, fmt.Errorf("parse fitness %q: %w", m[1], err)
		}
		return Parsed{Fitness: fitness}, nil
	}
	return Parsed{}, ErrNoFitness
}
