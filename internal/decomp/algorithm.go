package decomp

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/paramsynth/internal/params"
	"github.com/san-kum/paramsynth/internal/reach"
	"github.com/san-kum/paramsynth/internal/ts"
)

const tracerName = "github.com/san-kum/paramsynth/internal/decomp"

// Options configures a decomposition run.
type Options[S comparable, T any] struct {
	// Chooser picks pivots. Defaults to Naive with map order.
	Chooser Chooser[S, T]

	// Logger receives per-iteration debug events and the run summary.
	// Defaults to a discarding logger.
	Logger *slog.Logger

	// Observer receives progress events. Optional.
	Observer Observer

	// Parallel runs child searches as concurrent tasks.
	Parallel bool

	// Workers bounds the number of concurrent tasks. Defaults to GOMAXPROCS.
	Workers int

	// TracerProvider creates the run span. Defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Algorithm decomposes one transition system.
type Algorithm[S comparable, T any] struct {
	solver   params.Solver[T]
	system   ts.TransitionSystem[S, T]
	chooser  Chooser[S, T]
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
	parallel bool
	workers  int

	iterations atomic.Int64
	count      *Count[T]
	store      *Store[S, T]
}

// frame is one pending iteration: a subsystem and the universe it searches.
type frame[S comparable, T any] struct {
	system   ts.TransitionSystem[S, T]
	universe params.StateSet[S, T]
	depth    int
}

func New[S comparable, T any](sv params.Solver[T], sys ts.TransitionSystem[S, T], opts Options[S, T]) *Algorithm[S, T] {
	a := &Algorithm[S, T]{
		solver:   sv,
		system:   sys,
		chooser:  opts.Chooser,
		logger:   opts.Logger,
		observer: opts.Observer,
		parallel: opts.Parallel,
		workers:  opts.Workers,
	}
	if a.chooser == nil {
		a.chooser = NewNaive[S, T](sv, nil)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	if a.observer == nil {
		a.observer = nopObserver{}
	}
	if a.workers <= 0 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	a.tracer = tp.Tracer(tracerName)
	return a
}

// Run decomposes the whole system. The context is checked between
// iterations; a canceled run returns the context error and no result.
func (a *Algorithm[S, T]) Run(ctx context.Context) (*Result[S, T], error) {
	universe := a.system.States()
	ctx, span := a.tracer.Start(ctx, "decomp.Run",
		trace.WithAttributes(
			attribute.Int("decomp.states", len(universe)),
			attribute.Bool("decomp.parallel", a.parallel),
		),
	)
	defer span.End()

	start := time.Now()
	a.iterations.Store(0)
	a.count = NewCount(a.solver)
	a.store = NewStore[S, T](a.solver)

	root := frame[S, T]{system: a.system, universe: universe}
	var err error
	if a.parallel {
		err = a.runParallel(ctx, root)
	} else {
		err = a.runSequential(ctx, root)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result := a.store.Finalize(a.count)
	result.Iterations = int(a.iterations.Load())

	span.SetAttributes(
		attribute.Int("decomp.components", len(result.Components)),
		attribute.Int("decomp.iterations", result.Iterations),
		attribute.Int("decomp.max_attractors", len(result.Counts)),
	)
	a.logger.Info("decomposition finished",
		"states", len(universe),
		"components", len(result.Components),
		"max_attractors", len(result.Counts),
		"iterations", result.Iterations,
		"elapsed", time.Since(start),
	)
	return result, nil
}

func (a *Algorithm[S, T]) runSequential(ctx context.Context, root frame[S, T]) error {
	stack := []frame[S, T]{root}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, a.iterate(f)...)
	}
	return nil
}

// runParallel hands child frames to new tasks while the group has room and
// keeps the rest on the current task's own stack.
func (a *Algorithm[S, T]) runParallel(ctx context.Context, root frame[S, T]) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	var process func(f frame[S, T]) error
	process = func(f frame[S, T]) error {
		stack := []frame[S, T]{f}
		for len(stack) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, child := range a.iterate(cur) {
				if !g.TryGo(func() error { return process(child) }) {
					stack = append(stack, child)
				}
			}
		}
		return nil
	}

	g.Go(func() error { return process(root) })
	return g.Wait()
}

// iterate processes one frame and returns the frames it spawns.
func (a *Algorithm[S, T]) iterate(f frame[S, T]) []frame[S, T] {
	if len(f.universe) == 0 {
		return nil
	}
	start := time.Now()
	sv := a.solver
	a.iterations.Add(1)

	pivot := a.chooser.Choose(f.universe)
	forward := reach.Forward(sv, f.system, pivot)
	backward := reach.Backward(sv, f.system, pivot, forward)

	var children []frame[S, T]

	// Forward states not proven to return to the pivot.
	undecided := params.Minus(sv, backward, forward)
	continueWith := params.Colors(sv, undecided)
	if !sv.IsEmpty(continueWith) {
		children = append(children, frame[S, T]{
			system:   f.system.RestrictTo(undecided),
			universe: undecided,
			depth:    f.depth + 1,
		})
		a.observer.OnBranch(BranchUndecided)
	}

	// Where nothing is undecided, the forward set is terminal.
	found := sv.Complement(continueWith, params.Colors(sv, f.universe))
	if !sv.IsEmpty(found) {
		if n := a.store.Push(forward, found); n > 0 {
			a.observer.OnComponent(n, sv.Volume(found))
			a.logger.Debug("component", "depth", f.depth, "states", n, "colors", sv.Print(found))
		}
	}

	reachesForward := reach.Backward(sv, f.system, forward, nil)
	unrelated := params.Minus(sv, reachesForward, f.universe)
	newComponents := params.Colors(sv, unrelated)
	if !sv.IsEmpty(newComponents) {
		a.count.Push(newComponents)
		children = append(children, frame[S, T]{
			system:   f.system.RestrictTo(unrelated),
			universe: unrelated,
			depth:    f.depth + 1,
		})
		a.observer.OnBranch(BranchUnrelated)
	}

	stats := IterationStats{
		Depth:    f.depth,
		Universe: len(f.universe),
		Pivot:    len(pivot),
		Forward:  len(forward),
		Backward: len(backward),
		Elapsed:  time.Since(start),
	}
	a.observer.OnIteration(stats)
	a.logger.Debug("iteration",
		"depth", stats.Depth,
		"universe", stats.Universe,
		"forward", stats.Forward,
		"backward", stats.Backward,
		"children", len(children),
	)
	return children
}
