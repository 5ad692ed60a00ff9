// Package experiment wires a configuration into a decomposition run.
package experiment

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/paramsynth/internal/config"
	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/models"
	"github.com/san-kum/paramsynth/internal/params/interval"
)

const tracerName = "github.com/san-kum/paramsynth/internal/experiment"

var ErrNotSetup = errors.New("experiment: not setup")

type Options struct {
	Logger   *slog.Logger
	Observer decomp.Observer

	// TracerProvider is shared with the decomposition. Defaults to the
	// global provider, which telemetry.Init replaces.
	TracerProvider trace.TracerProvider
}

// Report is the outcome of one run.
type Report struct {
	Result   *decomp.Result[int, interval.Set]
	Model    string
	Pivot    string
	Parallel bool
	States   int
	Edges    int
	Elapsed  time.Duration
}

type Experiment struct {
	cfg     *config.Config
	opts    Options
	tracer  trace.Tracer
	solver  *interval.Solver
	system  *models.System
	chooser decomp.Chooser[int, interval.Set]
}

func New(cfg *config.Config, opts Options) *Experiment {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	return &Experiment{
		cfg:    cfg,
		opts:   opts,
		tracer: opts.TracerProvider.Tracer(tracerName),
	}
}

// Setup generates the configured model and prepares the pivot chooser.
func (e *Experiment) Setup(reg *Registry) error {
	model, err := reg.GetModel(e.cfg.Model)
	if err != nil {
		return err
	}
	sv := interval.NewSolver(e.cfg.Domain.Low, e.cfg.Domain.High)
	sys, err := model.Build(sv)
	if err != nil {
		return fmt.Errorf("build %s: %w", model.Name(), err)
	}
	return e.SetupSystem(sv, sys)
}

// SetupSystem uses an existing system, e.g. one read from disk.
func (e *Experiment) SetupSystem(sv *interval.Solver, sys *models.System) error {
	chooser, err := decomp.NewChooser[int, interval.Set](e.cfg.Pivot, sv, sys, cmp.Compare[int])
	if err != nil {
		return err
	}
	e.solver = sv
	e.system = sys
	e.chooser = chooser
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if e.system == nil {
		return nil, ErrNotSetup
	}

	ctx, span := e.tracer.Start(ctx, "experiment.Run",
		trace.WithAttributes(
			attribute.String("experiment.model", e.cfg.Model.Kind),
			attribute.String("experiment.pivot", e.cfg.Pivot),
			attribute.Int("experiment.edges", e.system.NumEdges()),
		),
	)
	defer span.End()

	e.opts.Logger.Debug("starting decomposition",
		"model", e.cfg.Model.Kind,
		"states", e.system.NumStates(),
		"edges", e.system.NumEdges(),
		"pivot", e.cfg.Pivot,
		"parallel", e.cfg.Parallel,
	)

	start := time.Now()
	alg := decomp.New[int, interval.Set](e.solver, e.system, decomp.Options[int, interval.Set]{
		Chooser:  e.chooser,
		Logger:   e.opts.Logger,
		Observer: e.opts.Observer,
		Parallel: e.cfg.Parallel,
		Workers:  e.cfg.Workers,

		TracerProvider: e.opts.TracerProvider,
	})
	res, err := alg.Run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("decompose: %w", err)
	}

	return &Report{
		Result:   res,
		Model:    e.cfg.Model.Kind,
		Pivot:    e.cfg.Pivot,
		Parallel: e.cfg.Parallel,
		States:   e.system.NumStates(),
		Edges:    e.system.NumEdges(),
		Elapsed:  time.Since(start),
	}, nil
}

func (e *Experiment) Solver() *interval.Solver { return e.solver }

// System returns the system built by Setup.
func (e *Experiment) System() *models.System { return e.system }
