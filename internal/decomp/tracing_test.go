package decomp_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/params/interval"
)

func spanAttributes(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

var _ = Describe("Tracing", func() {
	var (
		sv       *interval.Solver
		recorder *tracetest.SpanRecorder
		tp       *sdktrace.TracerProvider
	)

	BeforeEach(func() {
		sv = interval.NewSolver(0, 10)
		recorder = tracetest.NewSpanRecorder()
		tp = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		DeferCleanup(func() {
			Expect(tp.Shutdown(context.Background())).To(Succeed())
		})
	})

	It("records one decomp.Run span with the run summary", func() {
		sys := build(sv, 3,
			edge{0, 1, sv.Full()},
			edge{1, 0, sv.Full()},
			edge{1, 2, interval.Set{5, 10}},
		)
		run(sv, sys, decomp.Options[int, interval.Set]{TracerProvider: tp})

		spans := recorder.Ended()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Name()).To(Equal("decomp.Run"))
		Expect(spans[0].Status().Code).NotTo(Equal(codes.Error))

		attrs := spanAttributes(spans[0])
		Expect(attrs["decomp.states"].AsInt64()).To(BeEquivalentTo(3))
		Expect(attrs["decomp.parallel"].AsBool()).To(BeFalse())
		Expect(attrs["decomp.components"].AsInt64()).To(BeEquivalentTo(2))
		Expect(attrs["decomp.iterations"].AsInt64()).To(BeEquivalentTo(3))
		Expect(attrs["decomp.max_attractors"].AsInt64()).To(BeEquivalentTo(2))
	})

	It("marks the span failed on cancellation", func() {
		sys := build(sv, 2, edge{0, 1, sv.Full()})
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := decomp.New[int, interval.Set](sv, sys, decomp.Options[int, interval.Set]{
			Parallel:       true,
			TracerProvider: tp,
		}).Run(canceled)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())

		spans := recorder.Ended()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Status().Code).To(Equal(codes.Error))
		Expect(spanAttributes(spans[0])["decomp.parallel"].AsBool()).To(BeTrue())
		Expect(spanAttributes(spans[0])).NotTo(HaveKey(attribute.Key("decomp.components")))
	})
})
