package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"FundBench/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists benchmark history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read history while a benchmark is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS benchmark_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			dataset         TEXT NOT NULL,
			method          TEXT NOT NULL,
			iteration       INTEGER,
			fitness         REAL,
			allocations     INTEGER,
			has_allocations INTEGER,
			runtime_ms      REAL,
			valid           INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_pair ON benchmark_runs(dataset, method, timestamp)`,

		`CREATE TABLE IF NOT EXISTS benchmark_summaries (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			dataset           TEXT NOT NULL,
			method            TEXT NOT NULL,
			runs              INTEGER,
			valid_runs        INTEGER,
			normalized        INTEGER,
			fitness_min       REAL,
			fitness_max       REAL,
			fitness_avg       REAL,
			allocations_min   REAL,
			allocations_max   REAL,
			allocations_avg   REAL,
			runtime_min       REAL,
			runtime_max       REAL,
			runtime_avg       REAL,
			baseline          REAL,
			requirement_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_ts ON benchmark_summaries(timestamp)`,

		`CREATE TABLE IF NOT EXISTS dataset_generations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			name            TEXT NOT NULL,
			dir             TEXT,
			seed            INTEGER,
			sources         INTEGER,
			requirements    INTEGER,
			balance_pools   INTEGER,
			duration_months INTEGER,
			max_tenor       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_ts ON dataset_generations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(res *model.RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO benchmark_runs
		(timestamp, dataset, method, iteration, fitness, allocations, has_allocations, runtime_ms, valid)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.Dataset, res.Method, res.Iteration,
		res.Fitness, res.Allocations, boolInt(res.HasAllocations),
		float64(res.Runtime)/float64(time.Millisecond), boolInt(res.Valid()),
	)
	return err
}

func (r *SQLiteRecorder) RecordSummary(sum *model.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO benchmark_summaries
		(timestamp, dataset, method, runs, valid_runs, normalized,
		 fitness_min, fitness_max, fitness_avg,
		 allocations_min, allocations_max, allocations_avg,
		 runtime_min, runtime_max, runtime_avg,
		 baseline, requirement_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), sum.Dataset, sum.Method, sum.Runs, sum.ValidRuns, boolInt(sum.Normalized),
		sum.Fitness.Min, sum.Fitness.Max, sum.Fitness.Avg,
		sum.Allocations.Min, sum.Allocations.Max, sum.Allocations.Avg,
		sum.Runtime.Min, sum.Runtime.Max, sum.Runtime.Avg,
		sum.Baseline, sum.RequirementCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordGeneration(evt *GenerationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO dataset_generations
		(timestamp, name, dir, seed, sources, requirements, balance_pools, duration_months, max_tenor)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Name, evt.Dir, int64(evt.Seed),
		evt.Sources, evt.Requirements, evt.BalancePools,
		evt.DurationMonths, evt.MaxTenor,
	)
	return err
}

func (r *SQLiteRecorder) LatestSummaries(limit int) ([]model.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT dataset, method, runs, valid_runs, normalized,
		fitness_min, fitness_max, fitness_avg,
		allocations_min, allocations_max, allocations_avg,
		runtime_min, runtime_max, runtime_avg,
		baseline, requirement_count
		FROM benchmark_summaries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []model.Summary
	for rows.Next() {
		var s model.Summary
		var normalized int
		if err := rows.Scan(&s.Dataset, &s.Method, &s.Runs, &s.ValidRuns, &normalized,
			&s.Fitness.Min, &s.Fitness.Max, &s.Fitness.Avg,
			&s.Allocations.Min, &s.Allocations.Max, &s.Allocations.Avg,
			&s.Runtime.Min, &s.Runtime.Max, &s.Runtime.Avg,
			&s.Baseline, &s.RequirementCount,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.Normalized = normalized != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
