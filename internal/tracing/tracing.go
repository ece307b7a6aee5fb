package tracing

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	lambdadetector "go.opentelemetry.io/contrib/detectors/aws/lambda"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// InitOtelXrayTracer sets up a tracer provider exporting spans to the X-Ray
// daemon over UDP, with X-Ray trace IDs and propagation. When stdoutSpans is
// set the spans go to stdout instead, which is handy for local runs without
// a daemon.
func InitOtelXrayTracer(ctx context.Context, logger *slog.Logger, isLambda, stdoutSpans bool) *trace.TracerProvider {
	opts := []trace.TracerProviderOption{}

	if isLambda {
		detector := lambdadetector.NewResourceDetector()
		lambdaResource, err := detector.Detect(ctx)
		if err != nil {
			logger.Error("failed to detect lambda resource attributes", "error", err)
			os.Exit(1)
		}
		opts = append(opts, trace.WithResource(lambdaResource))
	}

	if stdoutSpans {
		stdoutExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			logger.Error("failed to initialize stdout exporter", "error", err)
			os.Exit(1)
		}
		opts = append(opts, trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(stdoutExporter)))
	} else {
		udpExporter, err := xrayudp.NewSpanExporter(ctx)
		if err != nil {
			logger.Error("failed to initialize xray exporter", "error", err)
			os.Exit(1)
		}
		opts = append(opts, trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(udpExporter)))
	}

	opts = append(opts, trace.WithIDGenerator(xray.NewIDGenerator()))
	tp := trace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	return tp
}
