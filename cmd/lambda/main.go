package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/otel"

	cmdinternal "github.com/fleetwise-io/ecsautoscalr/cmd/internal"
	"github.com/fleetwise-io/ecsautoscalr/internal"
	"github.com/fleetwise-io/ecsautoscalr/internal/tracing"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	tp := tracing.InitOtelXrayTracer(ctx, logger, true, false)
	defer func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("error shutting down tracer provider", "error", err)
		}
	}(ctx)

	lambda.Start(func(ctx context.Context) (internal.Report, error) {
		// Derive a per-invocation logger: the handler outlives a single
		// invocation on warm starts, so the shared logger must not be
		// mutated here.
		l := logger
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			l = logger.With("aws_request_id", lc.AwsRequestID)
		}

		t := otel.Tracer("lambda")
		ctx, span := t.Start(ctx, "autoscaling")
		defer span.End()

		return cmdinternal.Handle(ctx, l)
	})
}
