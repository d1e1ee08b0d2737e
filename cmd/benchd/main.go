package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"FundBench/internal/config"
	"FundBench/internal/notifier"
	"FundBench/internal/publish"
	"FundBench/internal/recorder"
	"FundBench/internal/report"
	"FundBench/internal/runner"
	"FundBench/internal/scheduler"
	"FundBench/internal/solver"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FundBench daemon starting...")

	// Load config
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

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if !cfg.TelegramEnabled() {
		log.Println("[WARN] telegram credentials not set, notifications disabled")
	}

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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ex := solver.NewProcessExecutor(cfg.Paths.BuildDir, cfg.Paths.WorkDir, cfg.Runner.Timeout)
	r := runner.New(ex, rec, cfg.Paths.DataDir)
	r.BaselineMethod = cfg.Runner.BaselineMethod

	plan := runner.Plan{
		Datasets:   cfg.Runner.Datasets,
		Methods:    cfg.Runner.Methods,
		Iterations: cfg.Runner.Iterations,
		Normalize:  cfg.Runner.Mode == string(report.ModeNormalized),
	}
	metricsPath := cfg.Metrics.TextfilePath
	if metricsPath != "" && !filepath.IsAbs(metricsPath) {
		metricsPath = filepath.Join(cfg.Paths.OutputDir, metricsPath)
	}
	out := publish.Options{
		Dir:         cfg.Paths.OutputDir,
		Prefix:      cfg.Runner.OutputPrefix,
		Stats:       report.StatSet(cfg.Runner.Stats),
		Plot:        cfg.Runner.Plot,
		MetricsPath: metricsPath,
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, r, plan, out, tn, rec)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()
	log.Printf("[INFO] benchmark scheduled at %q", cfg.Schedule.Cron)

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, running benchmark now")
		go func() {
			if _, err := sched.RunNow(); err != nil {
				log.Printf("[ERROR] startup benchmark: %v", err)
			}
		}()
	}

	log.Println("[INFO] FundBench daemon is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] FundBench daemon stopped")
}
