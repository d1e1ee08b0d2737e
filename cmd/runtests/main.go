package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"FundBench/internal/config"
	"FundBench/internal/publish"
	"FundBench/internal/recorder"
	"FundBench/internal/report"
	"FundBench/internal/runner"
	"FundBench/internal/solver"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := config.LoadDotenv(".env"); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	args, err := parseArgs(os.Args[1:], cfg)
	if errors.Is(err, errHelp) {
		fmt.Println(usage)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, usage)
		log.Fatalf("[FATAL] %v", err)
	}

	if err := run(cfg, args); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, args *Args) error {
	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ex := solver.NewProcessExecutor(cfg.Paths.BuildDir, cfg.Paths.WorkDir, args.Timeout)
	r := runner.New(ex, rec, cfg.Paths.DataDir)
	r.BaselineMethod = cfg.Runner.BaselineMethod

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := r.Run(ctx, runner.Plan{
		Datasets:   args.Datasets,
		Methods:    args.Methods,
		Iterations: args.Iterations,
		Normalize:  args.Mode == report.ModeNormalized,
	})
	if err != nil {
		return fmt.Errorf("benchmark aborted: %w", err)
	}

	_, err = publish.Write(rep, publish.Options{
		Dir:         cfg.Paths.OutputDir,
		Prefix:      cfg.Runner.OutputPrefix,
		Stats:       args.Stats,
		Plot:        args.Plot,
		MetricsPath: metricsPath(cfg),
	})
	if err != nil {
		return err
	}

	fmt.Println()
	return report.PrintSummary(os.Stdout, rep)
}

// metricsPath resolves a relative textfile path against the output directory.
func metricsPath(cfg *config.Config) string {
	p := cfg.Metrics.TextfilePath
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.Paths.OutputDir, p)
}
