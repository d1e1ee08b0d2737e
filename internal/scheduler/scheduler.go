package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"FundBench/internal/model"
	"FundBench/internal/notifier"
	"FundBench/internal/publish"
	"FundBench/internal/recorder"
	"FundBench/internal/runner"

	"github.com/robfig/cron/v3"
)

// latestLimit caps the summaries shown by /latest.
const latestLimit = 10

// ErrStopped is returned by RunNow after Stop.
var ErrStopped = errors.New("scheduler stopped")

// Scheduler runs the configured benchmark on a cron schedule and on demand.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   *runner.Runner
	Plan     runner.Plan
	Output   publish.Options
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Ctx      context.Context

	// mu is held for the whole of a benchmark run.
	mu      sync.Mutex
	stopped bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r *runner.Runner, plan runner.Plan, out publish.Options, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   r,
		Plan:     plan,
		Output:   out,
		Notifier: n,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register adds the benchmark task under a six-field cron expression.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.benchmarkTask); err != nil {
		return fmt.Errorf("register benchmark task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running benchmark, scheduled
// or manual, to finish. No run starts afterwards.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the benchmark immediately, waiting for any run in progress.
func (s *Scheduler) RunNow() (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, ErrStopped
	}
	return s.run()
}

func (s *Scheduler) benchmarkTask() {
	log.Println("[INFO] running scheduled benchmark")
	if _, err := s.RunNow(); err != nil {
		log.Printf("[ERROR] scheduled benchmark: %v", err)
	}
}

// run expects s.mu to be held.
func (s *Scheduler) run() (*model.Report, error) {
	rep, err := s.Runner.Run(s.Ctx, s.Plan)
	if err != nil {
		s.trySend(notifier.FormatFailure(err))
		return nil, err
	}
	if _, err := publish.Write(rep, s.Output); err != nil {
		log.Printf("[ERROR] write outputs: %v", err)
	}
	s.trySend(notifier.FormatBenchmarkReport(rep))
	return rep, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		if !s.mu.TryLock() {
			return "⏳ A benchmark is already running."
		}
		if s.stopped {
			s.mu.Unlock()
			return "🛑 Shutting down, no new runs."
		}
		go func() {
			defer s.mu.Unlock()
			if _, err := s.run(); err != nil {
				log.Printf("[ERROR] manual benchmark: %v", err)
			}
		}()
		return "▶️ Benchmark started."
	case "/latest":
		sums, err := s.Recorder.LatestSummaries(latestLimit)
		if err != nil {
			log.Printf("[ERROR] load latest summaries: %v", err)
			return "❌ Could not load benchmark history."
		}
		return notifier.FormatLatest(sums)
	default:
		return notifier.HelpText()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
