package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name      string
		stdout    string
		fitness   float64
		allocs    int
		hasAllocs bool
	}{
		{"final line", "Initialization complete\nfinal fitness was 1234.56\n", 1234.56, 0, false},
		{"negative", "final fitness was -3.50", -3.5, 0, false},
		{"allocations", "iter 10\nfitness was 88.25 from 42 allocations\n", 88.25, 42, true},
		{"allocations win over final", "final fitness was 1.00\nfitness was 2.00 from 7 allocations", 2, 7, true},
	}
	for _, tt := range tests {
		got, err := ParseOutput(tt.stdout)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got.Fitness != tt.fitness || got.Allocations != tt.allocs || got.HasAllocations != tt.hasAllocs {
			t.Errorf("%s: expected (%v, %d, %v), got %+v", tt.name, tt.fitness, tt.allocs, tt.hasAllocs, got)
		}
	}
}

func TestParseOutput_NoMatch(t *testing.T) {
	for _, s := range []string{"", "Final best solution was 12.0", "final fitness was 12"} {
		if _, err := ParseOutput(s); !errors.Is(err, ErrNoFitness) {
			t.Errorf("%q: expected ErrNoFitness, got %v", s, err)
		}
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	if _, ok := Locate(dir, "pso"); ok {
		t.Fatal("expected pso to be missing")
	}

	if err := os.WriteFile(filepath.Join(dir, "pso"), []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ga.exe"), []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "heuristic"), 0o755); err != nil {
		t.Fatal(err)
	}

	if p, ok := Locate(dir, "pso"); !ok || filepath.Base(p) != "pso" {
		t.Errorf("expected pso without suffix, got %q %v", p, ok)
	}
	if p, ok := Locate(dir, "ga"); !ok || filepath.Base(p) != "ga.exe" {
		t.Errorf("expected ga.exe, got %q %v", p, ok)
	}
	if _, ok := Locate(dir, "heuristic"); ok {
		t.Error("a directory must not count as an executable")
	}
}

func TestProcessExecutor_MissingBinary(t *testing.T) {
	ex := NewProcessExecutor(t.TempDir(), "", 0)
	_, err := ex.Run(context.Background(), "nope", "DS")
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound in chain, got %v", err)
	}
}

func TestMockExecutor_ReplaysOutputs(t *testing.T) {
	m := NewMockExecutor(map[string][]string{
		"pso": {"final fitness was 1.00", "final fitness was 2.00"},
	})
	if !m.Available("pso") || m.Available("ga") {
		t.Fatal("unexpected availability")
	}
	want := []string{"final fitness was 1.00", "final fitness was 2.00", "final fitness was 2.00"}
	for i, w := range want {
		out, err := m.Run(context.Background(), "pso", "DS")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if out.Stdout != w {
			t.Errorf("call %d: expected %q, got %q", i, w, out.Stdout)
		}
	}
	if m.CallsFor("pso") != 3 {
		t.Errorf("expected 3 calls, got %d", m.CallsFor("pso"))
	}
}
