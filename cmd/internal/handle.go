package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fleetwise-io/ecsautoscalr/internal"
)

// Handle runs one control-loop cycle: parse configuration, build the AWS
// controller, run the auto-scaler, and return its report.
func Handle(ctx context.Context, logger *slog.Logger) (internal.Report, error) {
	var cfg internal.RuntimeConfig
	if err := cfg.Parse(); err != nil {
		return internal.Report{}, err
	}

	controller, err := internal.NewAWSController(ctx, &cfg, logger)
	if err != nil {
		return internal.Report{}, fmt.Errorf("could not create AWS controller: %w", err)
	}

	report := internal.NewAutoScaler(controller, logger).Run(ctx, cfg)

	logger.Info("cycle complete",
		"status", report.Status,
		"samples", report.Samples,
		"predicted", report.Forecast,
		"desired", report.DesiredCount,
		"required", report.RequiredCount,
		"action", report.Direction,
		"scaled", report.ScaleApplied,
		"healed", report.Healed,
		"step_errors", len(report.Errors),
	)

	return report, nil
}
