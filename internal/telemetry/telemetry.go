// Package telemetry installs the OpenTelemetry tracer provider that the
// decomposition and experiment spans are exported through.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

var ErrUnknownExporter = errors.New("telemetry: unknown trace exporter")

type Config struct {
	// Exporter is "none" or "stdout".
	Exporter    string
	ServiceName string
	Version     string

	// Writer receives stdout spans. Defaults to os.Stderr so traces never
	// mix with command output.
	Writer io.Writer
}

// Init builds a tracer provider for cfg and installs it globally. The
// returned shutdown flushes pending spans and must be called before exit.
// With the "none" exporter the global provider is left untouched and
// shutdown is a no-op.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	tp, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if tp == nil {
		return func(context.Context) error { return nil }, nil
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewProvider returns the provider for cfg without installing it, or nil
// for the "none" exporter.
func NewProvider(cfg Config) (*sdktrace.TracerProvider, error) {
	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.Exporter)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "paramsynth"
	}
	res := resource.NewWithAttributes("",
		attribute.String("service.name", name),
		attribute.String("service.version", cfg.Version),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
