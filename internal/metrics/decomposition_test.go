package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

func TestDecompositionObserver(t *testing.T) {
	m := NewDecomposition(prometheus.NewRegistry())

	m.OnIteration(decomp.IterationStats{Forward: 3, Elapsed: time.Millisecond})
	m.OnIteration(decomp.IterationStats{Forward: 1, Elapsed: time.Millisecond})
	m.OnBranch(decomp.BranchUndecided)
	m.OnBranch(decomp.BranchUnrelated)
	m.OnBranch(decomp.BranchUnrelated)
	m.OnComponent(2, 5)
	m.SetAttractors(2)

	if got := testutil.ToFloat64(m.Iterations); got != 2 {
		t.Errorf("iterations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Components); got != 1 {
		t.Errorf("components = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Branches.WithLabelValues("unrelated")); got != 2 {
		t.Errorf("unrelated branches = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Attractors); got != 2 {
		t.Errorf("attractors = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.ForwardStates); got != 1 {
		t.Errorf("forward histogram series = %d, want 1", got)
	}
}

func TestDecompositionDuringRun(t *testing.T) {
	sv := interval.NewSolver(0, 10)
	sys := ts.NewBuilder[int, interval.Set](sv).
		AddState(0, sv.Full()).
		AddState(1, sv.Full()).
		AddState(2, sv.Full()).
		AddEdge(0, 1, sv.Full()).
		AddEdge(1, 0, sv.Full()).
		AddEdge(1, 2, interval.Set{5, 10}).
		Build()

	m := NewDecomposition(prometheus.NewRegistry())
	res, err := decomp.New[int, interval.Set](sv, sys, decomp.Options[int, interval.Set]{Observer: m}).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	m.SetAttractors(len(res.Counts))

	if got := testutil.ToFloat64(m.Iterations); got != float64(res.Iterations) {
		t.Errorf("iterations = %v, want %d", got, res.Iterations)
	}
	if got := testutil.ToFloat64(m.Components); got != 3 {
		t.Errorf("components = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.Attractors); got != 2 {
		t.Errorf("attractors = %v, want 2", got)
	}
}
