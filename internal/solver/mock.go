package solver

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockExecutor returns scripted outputs for development and testing.
// Outputs for a method are consumed in order; the last one repeats.
type MockExecutor struct {
	mu      sync.Mutex
	Outputs map[string][]string // method -> stdout per call
	Errors  map[string]error    // method -> error returned on every call
	Runtime time.Duration
	Calls   []MockCall
}

// MockCall records one invocation.
type MockCall struct {
	Method  string
	Dataset string
}

// NewMockExecutor creates an executor that knows only the given methods.
func NewMockExecutor(outputs map[string][]string) *MockExecutor {
	return &MockExecutor{Outputs: outputs, Errors: map[string]error{}, Runtime: 10 * time.Millisecond}
}

func (m *MockExecutor) Name() string { return "mock" }

func (m *MockExecutor) Available(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Outputs[method]
	return ok
}

func (m *MockExecutor) Run(_ context.Context, method, dataset string) (*Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	m.Calls = append(m.Calls, MockCall{Method: method, Dataset: dataset})

	if err := m.Errors[method]; err != nil {
		return nil, &RunError{Method: method, Dataset: dataset, ExitCode: 1, Err: err}
	}
	outs, ok := m.Outputs[method]
	if !ok || len(outs) == 0 {
		return nil, &RunError{Method: method, Dataset: dataset, ExitCode: -1, Err: fmt.Errorf("%w: %s", ErrNotFound, method)}
	}
	if n >= len(outs) {
		n = len(outs) - 1
	}
	return &Output{Stdout: outs[n], Runtime: m.Runtime}, nil
}

// CallsFor returns how many times method was run.
func (m *MockExecutor) CallsFor(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}
