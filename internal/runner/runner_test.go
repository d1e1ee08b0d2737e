package runner_test

import (
	"context"
	"errors"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"FundBench/internal/dataset"
	"FundBench/internal/model"
	"FundBench/internal/recorder"
	"FundBench/internal/runner"
	"FundBench/internal/solver"
)

// countingRecorder keeps everything in memory.
type countingRecorder struct {
	recorder.NoopRecorder
	runs      []model.RunResult
	summaries []model.Summary
}

func (c *countingRecorder) RecordRun(res *model.RunResult) error {
	c.runs = append(c.runs, *res)
	return nil
}

func (c *countingRecorder) RecordSummary(sum *model.Summary) error {
	c.summaries = append(c.summaries, *sum)
	return nil
}

func writeDataset(dir, name string, requirements int) {
	params := dataset.DefaultParams()
	params.Name = name
	params.RequirementCount = requirements
	ds, err := dataset.Generate(params, rand.New(rand.NewPCG(1, 2)))
	Expect(err).NotTo(HaveOccurred())
	Expect(dataset.Write(dir, ds)).To(Succeed())
}

var _ = Describe("Runner", func() {
	var (
		dataDir string
		mock    *solver.MockExecutor
		rec     *countingRecorder
		r       *runner.Runner
		ctx     context.Context
	)

	BeforeEach(func() {
		dataDir = GinkgoT().TempDir()
		writeDataset(dataDir, "DSg_1", 80)
		writeDataset(dataDir, "DSg_2", 40)

		mock = solver.NewMockExecutor(map[string][]string{
			"heuristic": {"final fitness was 100.00"},
			"pso": {
				"fitness was 10.00 from 40 allocations",
				"fitness was 30.00 from 60 allocations",
				"fitness was -1.00 from 0 allocations",
			},
			"ga":        {"fitness was -5.00 from 3 allocations"},
			"worstcase": {"fitness was 200.00 from 80 allocations"},
		})
		rec = &countingRecorder{}
		r = runner.New(mock, rec, dataDir)
		ctx = context.Background()
	})

	Describe("Validate", func() {
		It("drops unknown methods and datasets without touching the plan", func() {
			plan := runner.Plan{
				Methods:  []string{"nope1", "nope2", "heuristic", "nope3", "pso"},
				Datasets: []string{"missing", "DSg_1", "gone", "DSg_2"},
			}
			methods, datasets := r.Validate(plan)

			Expect(methods).To(Equal([]string{"heuristic", "pso"}))
			Expect(datasets).To(Equal([]string{"DSg_1", "DSg_2"}))
			Expect(plan.Methods).To(HaveLen(5))
			Expect(plan.Datasets).To(HaveLen(4))
		})
	})

	Describe("Run", func() {
		It("excludes unknown methods from every column and does not fail", func() {
			rep, err := r.Run(ctx, runner.Plan{
				Methods:    []string{"heuristic", "simulated_annealing"},
				Datasets:   []string{"DSg_1"},
				Iterations: 2,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Methods).To(Equal([]string{"heuristic"}))
			Expect(rep.Rows).To(HaveLen(1))
			Expect(rep.Rows[0].Summaries).To(HaveLen(1))
			Expect(mock.CallsFor("simulated_annealing")).To(BeZero())
		})

		It("runs each pair the requested number of times, sequentially", func() {
			rep, err := r.Run(ctx, runner.Plan{
				Methods:    []string{"heuristic"},
				Datasets:   []string{"DSg_1", "DSg_2"},
				Iterations: 3,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(mock.CallsFor("heuristic")).To(Equal(6))
			Expect(mock.Calls[0].Dataset).To(Equal("DSg_1"))
			Expect(mock.Calls[5].Dataset).To(Equal("DSg_2"))
			Expect(rec.runs).To(HaveLen(6))
			Expect(rec.summaries).To(HaveLen(2))

			s := rep.Rows[0].Summaries[0]
			Expect(s.Fitness.Avg).To(BeNumerically("~", 100, 1e-9))
			Expect(s.ValidRuns).To(Equal(3))
			Expect(s.Allocations.IsSentinel()).To(BeTrue())
		})

		It("averages only valid iterations", func() {
			rep, err := r.Run(ctx, runner.Plan{
				Methods:    []string{"pso"},
				Datasets:   []string{"DSg_1"},
				Iterations: 3,
			})
			Expect(err).NotTo(HaveOccurred())
			s := rep.Rows[0].Summaries[0]
			Expect(s.Runs).To(Equal(3))
			Expect(s.ValidRuns).To(Equal(2))
			Expect(s.Fitness.Avg).To(BeNumerically("~", 20, 1e-9))
			Expect(s.Fitness.Min).To(BeNumerically("~", 10, 1e-9))
			Expect(s.Fitness.Max).To(BeNumerically("~", 30, 1e-9))
			Expect(s.Allocations.Avg).To(BeNumerically("~", 50, 1e-9))
		})

		It("reports the sentinel when no iteration is valid", func() {
			rep, err := r.Run(ctx, runner.Plan{
				Methods:    []string{"ga"},
				Datasets:   []string{"DSg_1"},
				Iterations: 4,
			})
			Expect(err).NotTo(HaveOccurred())
			s := rep.Rows[0].Summaries[0]
			Expect(s.ValidRuns).To(BeZero())
			Expect(s.Fitness.Avg).To(Equal(model.SentinelValue))
			Expect(s.Fitness.Min).To(Equal(model.SentinelValue))
			Expect(s.Fitness.Max).To(Equal(model.SentinelValue))
		})

		It("normalizes against the baseline and the requirement count", func() {
			rep, err := r.Run(ctx, runner.Plan{
				Methods:    []string{"pso"},
				Datasets:   []string{"DSg_1", "DSg_2"},
				Iterations: 3,
				Normalize:  true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Normalized).To(BeTrue())
			Expect(mock.CallsFor("worstcase")).To(Equal(2))

			s1 := rep.Rows[0].Summaries[0]
			Expect(s1.Baseline).To(Equal(200.0))
			Expect(s1.RequirementCount).To(Equal(80))
			Expect(s1.Fitness.Avg).To(BeNumerically("~", 0.1, 1e-9))
			Expect(s1.Allocations.Avg).To(BeNumerically("~", 50.0/80, 1e-9))

			s2 := rep.Rows[1].Summaries[0]
			Expect(s2.RequirementCount).To(Equal(40))
		})

		It("fails when normalizing without a baseline executable", func() {
			delete(mock.Outputs, "worstcase")
			_, err := r.Run(ctx, runner.Plan{
				Methods: []string{"pso"}, Datasets: []string{"DSg_1"}, Iterations: 1, Normalize: true,
			})
			Expect(err).To(MatchError(ContainSubstring("baseline")))
		})

		It("does not require a baseline when nothing is left to run", func() {
			delete(mock.Outputs, "worstcase")
			rep, err := r.Run(ctx, runner.Plan{
				Methods: []string{"pso"}, Datasets: []string{"missing"}, Iterations: 1, Normalize: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Rows).To(BeEmpty())

			rep, err = r.Run(ctx, runner.Plan{
				Methods: []string{"nope"}, Datasets: []string{"DSg_1"}, Iterations: 1, Normalize: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Rows).To(HaveLen(1))
			Expect(rep.Rows[0].Summaries).To(BeEmpty())
			Expect(mock.Calls).To(BeEmpty())
		})

		It("aborts the whole run on unparsable output", func() {
			mock.Outputs["heuristic"] = []string{"Final best solution was 12.0"}
			_, err := r.Run(ctx, runner.Plan{
				Methods: []string{"pso", "heuristic"}, Datasets: []string{"DSg_1", "DSg_2"}, Iterations: 2,
			})
			Expect(errors.Is(err, solver.ErrNoFitness)).To(BeTrue())
			Expect(mock.CallsFor("heuristic")).To(Equal(1))
		})

		It("aborts the whole run when a solver fails", func() {
			mock.Errors["pso"] = errors.New("segmentation fault")
			_, err := r.Run(ctx, runner.Plan{
				Methods: []string{"pso"}, Datasets: []string{"DSg_1"}, Iterations: 3,
			})
			var re *solver.RunError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.Method).To(Equal("pso"))
		})

		It("rejects a non-positive iteration count", func() {
			_, err := r.Run(ctx, runner.Plan{Methods: []string{"pso"}, Datasets: []string{"DSg_1"}})
			Expect(err).To(HaveOccurred())
		})

		It("stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := r.Run(cctx, runner.Plan{
				Methods: []string{"pso"}, Datasets: []string{"DSg_1"}, Iterations: 3,
			})
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(mock.CallsFor("pso")).To(BeZero())
		})
	})
})
