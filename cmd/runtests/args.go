package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"FundBench/internal/config"
	"FundBench/internal/report"
)

const usage = `usage: runtests [-i N] [-ds NAME ...] [-m NAME ...] [--mode raw|normalized]
                [--stats avg|minmaxavg] [--timeout DURATION] [--plot]

  -i, --iterations N      runs per dataset/method pair
  -ds, --data-set NAME... datasets to run
  -m, --method NAME...    solver executables to compare
  --mode MODE             raw or normalized (divide by the worstcase baseline)
  --stats SET             avg or minmaxavg columns in the .dat files
  --timeout DURATION      kill a solver after DURATION (0 disables)
  --plot                  render PNG charts next to the .dat files`

// errHelp is returned when usage was requested.
var errHelp = errors.New("help requested")

// Args is the resolved command line, starting from the config defaults.
type Args struct {
	Iterations int
	Datasets   []string
	Methods    []string
	Mode       report.Mode
	Stats      report.StatSet
	Timeout    time.Duration
	Plot       bool
}

func parseArgs(args []string, cfg *config.Config) (*Args, error) {
	a := &Args{
		Iterations: cfg.Runner.Iterations,
		Datasets:   cfg.Runner.Datasets,
		Methods:    cfg.Runner.Methods,
		Mode:       report.Mode(cfg.Runner.Mode),
		Stats:      report.StatSet(cfg.Runner.Stats),
		Timeout:    cfg.Runner.Timeout,
		Plot:       cfg.Runner.Plot,
	}

	i := 0
	value := func(name string) (string, error) {
		if i >= len(args) {
			return "", fmt.Errorf("missing value for %s", name)
		}
		v := args[i]
		i++
		return v, nil
	}
	// list consumes values up to the next flag.
	list := func(name string) ([]string, error) {
		var out []string
		for i < len(args) && !strings.HasPrefix(args[i], "-") {
			out = append(out, args[i])
			i++
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%s expects at least one value", name)
		}
		return out, nil
	}

	for i < len(args) {
		arg := args[i]
		i++

		switch arg {
		case "-h", "--help":
			return nil, errHelp

		case "-i", "--iterations":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%s: expected a positive integer, got %q", arg, v)
			}
			a.Iterations = n

		case "-ds", "--data-set":
			v, err := list(arg)
			if err != nil {
				return nil, err
			}
			a.Datasets = v

		case "-m", "--method":
			v, err := list(arg)
			if err != nil {
				return nil, err
			}
			a.Methods = v

		case "--mode":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			if a.Mode, err = report.ParseMode(v); err != nil {
				return nil, err
			}

		case "--stats":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			if a.Stats, err = report.ParseStatSet(v); err != nil {
				return nil, err
			}

		case "--timeout":
			v, err := value(arg)
			if err != nil {
				return nil, err
			}
			d, err := time.ParseDuration(v)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("--timeout: expected a non-negative duration, got %q", v)
			}
			a.Timeout = d

		case "--plot":
			a.Plot = true

		default:
			return nil, fmt.Errorf("unknown argument %q", arg)
		}
	}
	return a, nil
}
