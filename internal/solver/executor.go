package solver

import (
	"context"
	"time"
)

// BaselineMethod is the executable whose fitness other methods are normalized against.
const BaselineMethod = "worstcase"

// Output is what a finished solver process left behind.
type Output struct {
	Stdout  string
	Stderr  string
	Runtime time.Duration
}

// Executor runs one solver method against one dataset.
type Executor interface {
	Run(ctx context.Context, method, dataset string) (*Output, error)
	// Available reports whether method can be run at all.
	Available(method string) bool
	Name() string
}
