package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"FundBench/internal/dataset"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Paths struct {
		BuildDir  string `yaml:"build_dir"`
		DataDir   string `yaml:"data_dir"`
		OutputDir string `yaml:"output_dir"`
		WorkDir   string `yaml:"work_dir"`
	} `yaml:"paths"`
	Runner struct {
		Iterations     int           `yaml:"iterations"`
		Datasets       []string      `yaml:"datasets"`
		Methods        []string      `yaml:"methods"`
		BaselineMethod string        `yaml:"baseline_method"`
		Timeout        time.Duration `yaml:"timeout"`
		Mode           string        `yaml:"mode"`
		Stats          string        `yaml:"stats"`
		OutputPrefix   string        `yaml:"output_prefix"`
		Plot           bool          `yaml:"plot"`
	} `yaml:"runner"`
	Generator Generator `yaml:"generator"`
	Schedule  struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		TextfilePath string `yaml:"textfile_path"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Generator overrides the built-in dataset generator parameters. Zero values
// keep the defaults.
type Generator struct {
	Name             string  `yaml:"name"`
	Seed             uint64  `yaml:"seed"`
	SourceCount      int     `yaml:"sources"`
	RequirementCount int     `yaml:"requirements"`
	PoolCount        int     `yaml:"balance_pools"`
	DurationMonths   int     `yaml:"duration_months"`
	MaxTenor         int     `yaml:"max_tenor"`
	StartYear        int     `yaml:"start_year"`
	MinAmount        int     `yaml:"min_amount"`
	MaxAmount        int     `yaml:"max_amount"`
	AmountStep       int     `yaml:"amount_step"`
	MinRate          float64 `yaml:"min_rate"`
	MaxRate          float64 `yaml:"max_rate"`
}

// Params merges the overrides into the default generator parameters.
func (g Generator) Params() dataset.GenerateParams {
	p := dataset.DefaultParams()
	if g.Name != "" {
		p.Name = g.Name
	}
	for _, o := range []struct {
		dst *int
		v   int
	}{
		{&p.SourceCount, g.SourceCount},
		{&p.RequirementCount, g.RequirementCount},
		{&p.PoolCount, g.PoolCount},
		{&p.DurationMonths, g.DurationMonths},
		{&p.MaxTenor, g.MaxTenor},
		{&p.StartYear, g.StartYear},
		{&p.MinAmount, g.MinAmount},
		{&p.MaxAmount, g.MaxAmount},
		{&p.AmountStep, g.AmountStep},
	} {
		if o.v != 0 {
			*o.dst = o.v
		}
	}
	if g.MinRate > 0 {
		p.MinRate = g.MinRate
	}
	if g.MaxRate > 0 {
		p.MaxRate = g.MaxRate
	}
	return p
}

// Path returns the config file location, honouring CONFIG_PATH.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// LoadDotenv loads a .env file into the environment if one exists.
// Variables already set are not overwritten.
func LoadDotenv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FUNDBENCH_BUILD_DIR"); v != "" {
		cfg.Paths.BuildDir = v
	}
	if v := os.Getenv("FUNDBENCH_DATA_DIR"); v != "" {
		cfg.Paths.DataDir = v
	}
	if v := os.Getenv("FUNDBENCH_OUTPUT_DIR"); v != "" {
		cfg.Paths.OutputDir = v
	}
	if v := os.Getenv("FUNDBENCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FUNDBENCH_TIMEOUT: %w", err)
		}
		cfg.Runner.Timeout = d
	}
	if v := os.Getenv("FUNDBENCH_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FUNDBENCH_ITERATIONS: %w", err)
		}
		cfg.Runner.Iterations = n
	}
	if v := os.Getenv("FUNDBENCH_METHODS"); v != "" {
		cfg.Runner.Methods = splitList(v)
	}
	if v := os.Getenv("FUNDBENCH_DATASETS"); v != "" {
		cfg.Runner.Datasets = splitList(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	setString(&cfg.Paths.BuildDir, "build")
	setString(&cfg.Paths.DataDir, "data")
	setString(&cfg.Paths.OutputDir, ".")
	setString(&cfg.Paths.WorkDir, ".")
	setInt(&cfg.Runner.Iterations, 3)
	if len(cfg.Runner.Datasets) == 0 {
		cfg.Runner.Datasets = []string{"DSg_1"}
	}
	if len(cfg.Runner.Methods) == 0 {
		cfg.Runner.Methods = []string{"heuristic"}
	}
	setString(&cfg.Runner.BaselineMethod, "worstcase")
	setString(&cfg.Runner.Mode, "raw")
	setString(&cfg.Runner.Stats, "avg")
	setString(&cfg.Runner.OutputPrefix, "comparison_test")
	setString(&cfg.Schedule.Cron, "0 0 2 * * *")

	return cfg, nil
}

// Validate checks values that would make a benchmark run meaningless.
// Telegram credentials are optional.
func (c *Config) Validate() error {
	if c.Runner.Iterations <= 0 {
		return fmt.Errorf("runner.iterations must be positive")
	}
	if c.Runner.Timeout < 0 {
		return fmt.Errorf("runner.timeout must not be negative")
	}
	switch c.Runner.Mode {
	case "raw", "normalized":
	default:
		return fmt.Errorf("runner.mode must be raw or normalized, got %q", c.Runner.Mode)
	}
	switch c.Runner.Stats {
	case "avg", "minmaxavg":
	default:
		return fmt.Errorf("runner.stats must be avg or minmaxavg, got %q", c.Runner.Stats)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if err := c.Generator.Params().Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

// TelegramEnabled reports whether notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}
