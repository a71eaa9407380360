// Package telemetry wires structured logging and OpenTelemetry spans and
// metrics around command execution and event fanout.
package telemetry

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry bundles the logger, tracer, and the counters this runtime
// exposes: commands dispatched and events fanned out.
type Telemetry struct {
	Logger *slog.Logger

	tracer          trace.Tracer
	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider
	commandsCounter metric.Int64Counter
	eventsCounter   metric.Int64Counter
}

// New builds a Telemetry bound to the given service name. Logging goes to
// stderr as structured JSON.
func New(serviceName string) (*Telemetry, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	tracerProvider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tracerProvider)

	meterProvider := sdkmetric.NewMeterProvider()
	otel.SetMeterProvider(meterProvider)
	meter := meterProvider.Meter(serviceName)

	commandsCounter, err := meter.Int64Counter("ncp.commands.dispatched")
	if err != nil {
		return nil, err
	}
	eventsCounter, err := meter.Int64Counter("ncp.events.fanned_out")
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		Logger:          logger,
		tracer:          tracerProvider.Tracer(serviceName),
		tracerProvider:  tracerProvider,
		meterProvider:   meterProvider,
		commandsCounter: commandsCounter,
		eventsCounter:   eventsCounter,
	}, nil
}

// ObserveCommand opens a span around one command's execution, tagged with
// its oid and method id, and increments the dispatched counter. The
// returned func ends the span; call it when the command's response has been
// built.
func (t *Telemetry) ObserveCommand(oid uint32, level, index uint16) func() {
	ctx, span := t.tracer.Start(context.Background(), "ncp.command",
		trace.WithAttributes(
			attribute.Int64("ncp.oid", int64(oid)),
			attribute.Int64("ncp.method.level", int64(level)),
			attribute.Int64("ncp.method.index", int64(index)),
		),
	)
	t.commandsCounter.Add(ctx, 1)
	return func() { span.End() }
}

// RecordEventFanout increments the events-fanned-out counter by delivered.
func (t *Telemetry) RecordEventFanout(ctx context.Context, delivered int64) {
	t.eventsCounter.Add(ctx, delivered)
}

// Shutdown flushes both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	traceErr := t.tracerProvider.Shutdown(ctx)
	if err := t.meterProvider.Shutdown(ctx); err != nil {
		return err
	}
	return traceErr
}
