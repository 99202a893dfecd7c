package inspect

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/loom"
)

// Default tracer name for Loom applications.
const defaultTracerName = "loom"

// TracerConfig configures the OpenTelemetry rebuild tracer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "loom").
	TracerName string

	// IncludeSlots includes the owner's slot count in spans.
	// Enabled by default.
	IncludeSlots bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracerOption configures the OpenTelemetry rebuild tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithIncludeSlots enables/disables including slot counts in spans.
func WithIncludeSlots(include bool) TracerOption {
	return func(c *TracerConfig) {
		c.IncludeSlots = include
	}
}

// Tracer wraps rebuild passes in OpenTelemetry spans.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before mounting components:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
//	tracer := inspect.NewTracer()
//	err := tracer.Rebuild(ctx, owner, render)
type Tracer struct {
	config TracerConfig
}

// NewTracer resolves a tracer from the global provider.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{
		TracerName:   defaultTracerName,
		IncludeSlots: true,
	}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &Tracer{config: config}
}

// Rebuild runs one pass of the owner inside a span. The span records the
// owner ID and pass number, the pass error (if any) as span status, and
// the slot count reached.
func (t *Tracer) Rebuild(ctx context.Context, o *loom.Owner, fn func()) error {
	_, span := t.config.tracer.Start(ctx, "loom.rebuild",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("loom.owner_id", int64(o.ID())),
			attribute.Int("loom.pass", o.PassCount()),
		),
	)
	defer span.End()

	err := o.Rebuild(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if t.config.IncludeSlots {
		span.SetAttributes(attribute.Int("loom.slots", len(o.Snapshot().Slots)))
	}
	return err
}
