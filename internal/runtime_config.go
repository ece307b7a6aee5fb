package internal

import (
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig carries everything the control loop needs for one cycle. The
// environment variable names match the original deployment so existing
// Lambda configurations keep working.
type RuntimeConfig struct {
	// Identity of the managed service.
	ECSCluster string `env:"ECS_CLUSTER,notEmpty"`
	ECSService string `env:"ECS_SERVICE,notEmpty"`
	AWSRegion  string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Metric selection and sampling.
	MetricNamespace     string `env:"METRIC_NAMESPACE" envDefault:"AWS/ECS"`
	MetricName          string `env:"METRIC_NAME" envDefault:"CPUUtilization"`
	MetricPeriodSeconds int    `env:"METRIC_PERIOD" envDefault:"60"`
	LookbackMinutes     int    `env:"LOOKBACK_MIN" envDefault:"10"`

	// Forecasting.
	PredictAheadMinutes int     `env:"PREDICT_AHEAD_MIN" envDefault:"5"`
	SmoothingAlpha      float64 `env:"SMOOTHING_ALPHA" envDefault:"0.5"`
	SmoothingBeta       float64 `env:"SMOOTHING_BETA" envDefault:"0.3"`

	// Scaling target: the steady-state utilization each task should carry.
	TargetPerTask float64 `env:"TARGET_CPU_PER_TASK" envDefault:"60.0"`

	// Slack notification. The direct URL takes precedence; the SSM parameter
	// is the fallback. Both may be empty, in which case notifications are
	// skipped.
	SlackWebhookURL      string `env:"SLACK_WEBHOOK"`
	SlackWebhookSSMParam string `env:"SLACK_WEBHOOK_SSM_PARAM"`
}

// Parse populates the config from environment variables and validates it.
func (r *RuntimeConfig) Parse() error {
	if err := env.Parse(r); err != nil {
		return fmt.Errorf("could not parse environment variables: %w", err)
	}

	return r.Validate()
}

// Validate rejects configurations the decision functions cannot act on
// safely.
func (r RuntimeConfig) Validate() error {
	if r.MetricPeriodSeconds <= 0 {
		return fmt.Errorf("metric period must be positive, got %d", r.MetricPeriodSeconds)
	}

	if r.LookbackMinutes <= 0 {
		return fmt.Errorf("lookback window must be positive, got %d", r.LookbackMinutes)
	}

	if r.PredictAheadMinutes <= 0 {
		return fmt.Errorf("forecast horizon must be positive, got %d", r.PredictAheadMinutes)
	}

	if r.TargetPerTask <= 0 {
		return fmt.Errorf("per-task target must be positive, got %v", r.TargetPerTask)
	}

	if r.SmoothingAlpha <= 0 || r.SmoothingAlpha >= 1 {
		return fmt.Errorf("smoothing alpha must be in (0, 1), got %v", r.SmoothingAlpha)
	}

	if r.SmoothingBeta <= 0 || r.SmoothingBeta >= 1 {
		return fmt.Errorf("smoothing beta must be in (0, 1), got %v", r.SmoothingBeta)
	}

	return nil
}

// MetricPeriod returns the metric sampling period.
func (r RuntimeConfig) MetricPeriod() time.Duration {
	return time.Duration(r.MetricPeriodSeconds) * time.Second
}

// LookbackWindow returns how far back the metric series should reach.
func (r RuntimeConfig) LookbackWindow() time.Duration {
	return time.Duration(r.LookbackMinutes) * time.Minute
}

// ForecastSteps converts the forecast horizon from minutes into sampling
// periods, always at least one.
func (r RuntimeConfig) ForecastSteps() int {
	return max(1, int(math.Ceil(float64(r.PredictAheadMinutes*60)/float64(r.MetricPeriodSeconds))))
}
