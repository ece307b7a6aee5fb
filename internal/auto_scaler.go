package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServiceSnapshot is what the orchestration API reports about the service at
// the start of a cycle.
type ServiceSnapshot struct {
	DesiredCount int
	RunningCount int
}

// TaskSummary counts the recently known task attempts for the service and
// how many of them have stopped.
type TaskSummary struct {
	TotalKnownTasks  int
	StoppedTaskCount int
}

//go:generate mockery --output ./ --name ControllerInterface --filename mock_controller_test.go --outpkg internal_test
type ControllerInterface interface {
	FetchMetricSeries(ctx context.Context, start, end time.Time, period time.Duration) (series []float64, err error)
	DescribeService(ctx context.Context) (snapshot *ServiceSnapshot, err error)
	ListTaskSummary(ctx context.Context) (summary *TaskSummary, err error)
	SetDesiredCount(ctx context.Context, count int) (err error)
	ForceRedeploy(ctx context.Context) (err error)
	Notify(ctx context.Context, message string) (err error)
}

// RunStatus summarizes how far a cycle got.
type RunStatus string

const (
	// StatusOK means the cycle ran to completion, possibly with individual
	// step failures recorded on the report.
	StatusOK RunStatus = "ok"

	// StatusNoData means the metric source had no datapoints for the
	// window, so no decision could be made. Distinct from a zero forecast.
	StatusNoData RunStatus = "no_data"

	// StatusIncomplete means the service state could not be fetched, so
	// neither policy could run.
	StatusIncomplete RunStatus = "incomplete"
)

// StepError records a collaborator failure without aborting the cycle.
type StepError struct {
	Step    string `json:"step"`
	Message string `json:"error"`
}

// Report is the structured result of one control-loop cycle. It always
// describes what was observed, predicted, decided and applied, even when some
// steps failed; it is also the Lambda's return payload.
type Report struct {
	Status        RunStatus        `json:"status"`
	Samples       int              `json:"samples"`
	Forecast      float64          `json:"predicted"`
	DesiredCount  int              `json:"desired"`
	RunningCount  int              `json:"running"`
	RequiredCount int              `json:"required"`
	Direction     ScalingDirection `json:"action"`
	ScaleApplied  bool             `json:"scaled"`
	Healed        bool             `json:"healed"`
	Errors        []StepError      `json:"errors,omitempty"`
}

func (r *Report) recordError(step string, err error) {
	r.Errors = append(r.Errors, StepError{Step: step, Message: err.Error()})
}

// AutoScaler sequences one control-loop cycle: fetch metrics, forecast,
// decide capacity, apply, decide health, apply, report. It holds no state
// between cycles.
type AutoScaler struct {
	controller ControllerInterface
	logger     *slog.Logger
	now        func() time.Time
}

func NewAutoScaler(controller ControllerInterface, logger *slog.Logger) *AutoScaler {
	return &AutoScaler{controller: controller, logger: logger, now: time.Now}
}

// Run executes a single cycle. Collaborator failures are recorded on the
// report rather than propagated: a failed scale-up still lets the health
// check run, and the caller always gets a complete picture of the cycle.
func (s AutoScaler) Run(ctx context.Context, cfg RuntimeConfig) Report {
	logger := s.logger.With(
		"cluster", cfg.ECSCluster,
		"service", cfg.ECSService,
	)

	report := Report{Status: StatusOK, Direction: ScalingDirectionNone}

	end := s.now()
	start := end.Add(-cfg.LookbackWindow())

	series, err := s.controller.FetchMetricSeries(ctx, start, end, cfg.MetricPeriod())
	if err != nil {
		report.recordError("fetch_metrics", err)
	}

	report.Samples = len(series)

	if len(series) == 0 {
		logger.Warn("no metric datapoints in lookback window")
		report.Status = StatusNoData
		s.notify(ctx, logger, fmt.Sprintf(":grey_question: Agent: no metric datapoints for %s", cfg.ECSService))
		return report
	}

	report.Forecast = Forecast(series, cfg.SmoothingAlpha, cfg.SmoothingBeta, cfg.ForecastSteps())
	logger.Info("forecast computed",
		"metric", cfg.MetricName,
		"samples", report.Samples,
		"steps_ahead", cfg.ForecastSteps(),
		"predicted", report.Forecast,
	)

	snapshot, err := s.controller.DescribeService(ctx)
	if err != nil {
		report.recordError("describe_service", err)
		report.Status = StatusIncomplete
		return report
	}

	report.DesiredCount = snapshot.DesiredCount
	report.RunningCount = snapshot.RunningCount

	decision := DecideCapacity(report.Forecast, snapshot.DesiredCount, cfg.TargetPerTask)
	report.RequiredCount = decision.RequiredCount
	report.Direction = decision.Direction

	logger.Info("capacity decision",
		"desired", snapshot.DesiredCount,
		"required", decision.RequiredCount,
		"direction", decision.Direction,
		"comments", decision.Comments,
	)

	if decision.Direction != ScalingDirectionNone {
		if err := s.controller.SetDesiredCount(ctx, decision.RequiredCount); err != nil {
			report.recordError("set_desired_count", err)
			s.notify(ctx, logger, fmt.Sprintf(":x: Failed to scale %s to %d", cfg.ECSService, decision.RequiredCount))
		} else {
			report.ScaleApplied = true
			s.notify(ctx, logger, fmt.Sprintf(":rocket: Scaling action: set desiredCount=%d for %s", decision.RequiredCount, cfg.ECSService))
		}
	}

	summary, err := s.controller.ListTaskSummary(ctx)
	if err != nil {
		report.recordError("list_tasks", err)
		return report
	}

	health := DecideHealth(ServiceState{
		DesiredCount:     snapshot.DesiredCount,
		RunningCount:     snapshot.RunningCount,
		TotalKnownTasks:  summary.TotalKnownTasks,
		StoppedTaskCount: summary.StoppedTaskCount,
	})

	if !health.ShouldHeal {
		return report
	}

	logger.Warn("heal triggered", "reason", health.Reason)

	if err := s.controller.ForceRedeploy(ctx); err != nil {
		report.recordError("force_redeploy", err)
		return report
	}

	report.Healed = true
	s.notify(ctx, logger, fmt.Sprintf(":wrench: Self-heal: forced new deployment for %s (%s)", cfg.ECSService, health.Reason))

	return report
}

// notify is best-effort: failures are logged, never recorded on the report.
func (s AutoScaler) notify(ctx context.Context, logger *slog.Logger, message string) {
	if err := s.controller.Notify(ctx, message); err != nil {
		logger.Warn("could not send notification", "error", err)
	}
}
