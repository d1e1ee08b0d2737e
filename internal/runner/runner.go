// Package runner drives solver executables over a matrix of datasets and
// methods and folds their results into a report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"FundBench/internal/calculator"
	"FundBench/internal/dataset"
	"FundBench/internal/model"
	"FundBench/internal/recorder"
	"FundBench/internal/solver"
)

// Plan is one benchmark request.
type Plan struct {
	Datasets   []string
	Methods    []string
	Iterations int
	// Normalize divides fitness by the baseline solver's fitness and
	// allocation counts by the dataset's requirement count.
	Normalize bool
}

// Runner executes plans strictly one process at a time.
type Runner struct {
	Executor       solver.Executor
	Recorder       recorder.Recorder
	DataDir        string
	BaselineMethod string
}

// New creates a Runner. A nil recorder is replaced by a no-op one.
func New(ex solver.Executor, rec recorder.Recorder, dataDir string) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Runner{
		Executor:       ex,
		Recorder:       rec,
		DataDir:        dataDir,
		BaselineMethod: solver.BaselineMethod,
	}
}

// Validate drops methods without an executable and datasets without a
// requirements file. It returns new slices and never modifies the plan.
func (r *Runner) Validate(plan Plan) (methods, datasets []string) {
	for _, m := range plan.Methods {
		if !r.Executor.Available(m) {
			log.Printf("[WARN] Method %s unrecognized, ignoring", m)
			continue
		}
		methods = append(methods, m)
	}
	for _, ds := range plan.Datasets {
		if !dataset.Exists(r.DataDir, ds) {
			log.Printf("[WARN] Data set %s unrecognized, ignoring", ds)
			continue
		}
		datasets = append(datasets, ds)
	}
	return methods, datasets
}

// Run executes every valid (dataset, method) pair plan.Iterations times.
// The first failed invocation or unparsable output aborts the whole run.
func (r *Runner) Run(ctx context.Context, plan Plan) (*model.Report, error) {
	if plan.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", plan.Iterations)
	}

	methods, datasets := r.Validate(plan)
	// The baseline is only needed when at least one pair will run.
	needBaseline := plan.Normalize && len(methods) > 0 && len(datasets) > 0
	if needBaseline && !r.Executor.Available(r.BaselineMethod) {
		return nil, fmt.Errorf("baseline executable %q not found", r.BaselineMethod)
	}

	rep := &model.Report{
		Methods:    methods,
		Datasets:   datasets,
		Normalized: plan.Normalize,
		StartedAt:  time.Now(),
	}

	for _, ds := range datasets {
		log.Printf("[INFO] Running tests for dataset %s", ds)

		var baseline float64
		var reqCount int
		if needBaseline {
			var err error
			baseline, reqCount, err = r.baseline(ctx, ds)
			if err != nil {
				return nil, err
			}
		}

		row := model.Row{Dataset: ds, Summaries: make([]model.Summary, 0, len(methods))}
		for _, m := range methods {
			sum, err := r.runPair(ctx, ds, m, plan.Iterations)
			if err != nil {
				return nil, err
			}
			if plan.Normalize {
				sum = calculator.Normalize(sum, baseline, reqCount)
			}
			log.Printf("[INFO] \tAverage fitness: %f", sum.Fitness.Avg)

			if err := r.Recorder.RecordSummary(&sum); err != nil {
				log.Printf("[ERROR] record summary: %v", err)
			}
			row.Summaries = append(row.Summaries, sum)
		}
		rep.Rows = append(rep.Rows, row)
	}

	rep.FinishedAt = time.Now()
	return rep, nil
}

func (r *Runner) runPair(ctx context.Context, ds, method string, iterations int) (model.Summary, error) {
	log.Printf("[INFO] Running %d iterations using %s", iterations, method)

	results := make([]model.RunResult, 0, iterations)
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return model.Summary{}, err
		}
		res, err := r.RunOnce(ctx, ds, method)
		if err != nil {
			return model.Summary{}, fmt.Errorf("iteration %d: %w", i, err)
		}
		res.Iteration = i
		log.Printf("[INFO] \tIteration %d: %f", i, res.Fitness)

		if err := r.Recorder.RecordRun(&res); err != nil {
			log.Printf("[ERROR] record run: %v", err)
		}
		results = append(results, res)
	}
	return calculator.Summarize(ds, method, results), nil
}

// baseline runs the baseline solver once and reads the requirement count used
// to normalize allocations.
func (r *Runner) baseline(ctx context.Context, ds string) (float64, int, error) {
	res, err := r.RunOnce(ctx, ds, r.BaselineMethod)
	if err != nil {
		return 0, 0, fmt.Errorf("baseline: %w", err)
	}
	if !res.Valid() {
		log.Printf("[WARN] baseline fitness for %s is %f, normalized fitness will be reported as %v",
			ds, res.Fitness, model.SentinelValue)
	}

	reqCount, err := dataset.RequirementCount(r.DataDir, ds)
	if err != nil {
		return 0, 0, fmt.Errorf("count requirements of %s: %w", ds, err)
	}
	log.Printf("[INFO] baseline for %s: fitness %f, %d requirements", ds, res.Fitness, reqCount)
	return res.Fitness, reqCount, nil
}

// RunOnce invokes one solver and parses its result line.
func (r *Runner) RunOnce(ctx context.Context, ds, method string) (model.RunResult, error) {
	out, err := r.Executor.Run(ctx, method, ds)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("run %s on %s: %w", method, ds, err)
	}
	parsed, err := solver.ParseOutput(out.Stdout)
	if err != nil {
		if errors.Is(err, solver.ErrNoFitness) {
			return model.RunResult{}, fmt.Errorf("%s on %s: %w (stdout %q)", method, ds, err, tail(out.Stdout, 200))
		}
		return model.RunResult{}, fmt.Errorf("%s on %s: %w", method, ds, err)
	}
	return model.RunResult{
		Dataset:        ds,
		Method:         method,
		Fitness:        parsed.Fitness,
		Allocations:    parsed.Allocations,
		HasAllocations: parsed.HasAllocations,
		Runtime:        out.Runtime,
	}, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
