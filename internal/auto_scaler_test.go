package internal_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fleetwise-io/ecsautoscalr/internal"
)

func testConfig() internal.RuntimeConfig {
	return internal.RuntimeConfig{
		ECSCluster:          "demo-cluster",
		ECSService:          "demo-service",
		MetricNamespace:     "AWS/ECS",
		MetricName:          "CPUUtilization",
		MetricPeriodSeconds: 60,
		LookbackMinutes:     10,
		PredictAheadMinutes: 5,
		SmoothingAlpha:      0.5,
		SmoothingBeta:       0.3,
		TargetPerTask:       60,
	}
}

func newTestScaler(ctrl *MockController) *internal.AutoScaler {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)

	return internal.NewAutoScaler(ctrl, slog.New(h))
}

func TestAutoScalerNoData(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{}, nil)
	ctrl.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return msg == ":grey_question: Agent: no metric datapoints for demo-service"
	})).Return(nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusNoData, report.Status)
	assert.Zero(t, report.Samples)
	assert.Empty(t, report.Errors)
}

func TestAutoScalerMetricFetchFailureIsNoData(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("throttled"))
	ctrl.On("Notify", mock.Anything, mock.Anything).Return(nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusNoData, report.Status)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "fetch_metrics", report.Errors[0].Step)
}

func TestAutoScalerScalingUp(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	// Flat series at 80: forecast 80, so 2 tasks at a target of 60 per task
	// need to become 3.
	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{80, 80, 80, 80}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 2, RunningCount: 2}, nil)
	ctrl.On("SetDesiredCount", mock.Anything, 3).Return(nil)
	ctrl.On("ListTaskSummary", mock.Anything).
		Return(&internal.TaskSummary{TotalKnownTasks: 2, StoppedTaskCount: 0}, nil)
	ctrl.On("Notify", mock.Anything, ":rocket: Scaling action: set desiredCount=3 for demo-service").
		Return(nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusOK, report.Status)
	assert.Equal(t, internal.ScalingDirectionUp, report.Direction)
	assert.Equal(t, 3, report.RequiredCount)
	assert.True(t, report.ScaleApplied)
	assert.False(t, report.Healed)
	assert.Empty(t, report.Errors)
}

func TestAutoScalerScalingDown(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	// Flat series at 20: forecast 20, well under 0.7*60, so 3 tasks shrink
	// to 1.
	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{20, 20, 20}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 3, RunningCount: 3}, nil)
	ctrl.On("SetDesiredCount", mock.Anything, 1).Return(nil)
	ctrl.On("ListTaskSummary", mock.Anything).
		Return(&internal.TaskSummary{TotalKnownTasks: 3, StoppedTaskCount: 0}, nil)
	ctrl.On("Notify", mock.Anything, mock.Anything).Return(nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.ScalingDirectionDown, report.Direction)
	assert.Equal(t, 1, report.RequiredCount)
	assert.True(t, report.ScaleApplied)
}

func TestAutoScalerNoScalingAction(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	// Forecast 50 with 3 tasks at target 60 needs exactly 3.
	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{50, 50, 50}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 3, RunningCount: 3}, nil)
	ctrl.On("ListTaskSummary", mock.Anything).
		Return(&internal.TaskSummary{TotalKnownTasks: 3, StoppedTaskCount: 0}, nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.ScalingDirectionNone, report.Direction)
	assert.False(t, report.ScaleApplied)
	ctrl.AssertNotCalled(t, "SetDesiredCount", mock.Anything, mock.Anything)
}

func TestAutoScalerHealsUnderProvisionedService(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{50, 50, 50}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 3, RunningCount: 1}, nil)
	ctrl.On("ListTaskSummary", mock.Anything).
		Return(&internal.TaskSummary{TotalKnownTasks: 4, StoppedTaskCount: 0}, nil)
	ctrl.On("ForceRedeploy", mock.Anything).Return(nil)
	ctrl.On("Notify", mock.Anything, mock.MatchedBy(func(msg string) bool {
		return msg != ""
	})).Return(nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusOK, report.Status)
	assert.True(t, report.Healed)
}

func TestAutoScalerScaleFailureStillRunsHealthCheck(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{80, 80, 80}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 2, RunningCount: 2}, nil)
	ctrl.On("SetDesiredCount", mock.Anything, 3).Return(errors.New("update failed"))
	ctrl.On("ListTaskSummary", mock.Anything).
		Return(&internal.TaskSummary{TotalKnownTasks: 10, StoppedTaskCount: 3}, nil)
	ctrl.On("ForceRedeploy", mock.Anything).Return(nil)
	ctrl.On("Notify", mock.Anything, mock.Anything).Return(nil)

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusOK, report.Status)
	assert.False(t, report.ScaleApplied)
	assert.True(t, report.Healed, "a failed scale-up must not block healing")
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "set_desired_count", report.Errors[0].Step)
}

func TestAutoScalerServiceStateFailureIsIncomplete(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{50, 50}, nil)
	ctrl.On("DescribeService", mock.Anything).Return(nil, errors.New("access denied"))

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusIncomplete, report.Status)
	assert.Equal(t, 50.0, report.Forecast, "the forecast is still reported")
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "describe_service", report.Errors[0].Step)
	ctrl.AssertNotCalled(t, "ListTaskSummary", mock.Anything)
}

func TestAutoScalerNotifyFailureIsNotRecorded(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{80, 80, 80}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 2, RunningCount: 2}, nil)
	ctrl.On("SetDesiredCount", mock.Anything, 3).Return(nil)
	ctrl.On("ListTaskSummary", mock.Anything).
		Return(&internal.TaskSummary{TotalKnownTasks: 2, StoppedTaskCount: 0}, nil)
	ctrl.On("Notify", mock.Anything, mock.Anything).Return(errors.New("webhook down"))

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusOK, report.Status)
	assert.True(t, report.ScaleApplied)
	assert.Empty(t, report.Errors, "notification failures are logged, not escalated")
}

func TestAutoScalerTaskListFailureIsRecorded(t *testing.T) {
	ctrl := new(MockController)
	defer ctrl.AssertExpectations(t)

	scaler := newTestScaler(ctrl)

	ctrl.On("FetchMetricSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]float64{50, 50, 50}, nil)
	ctrl.On("DescribeService", mock.Anything).
		Return(&internal.ServiceSnapshot{DesiredCount: 3, RunningCount: 3}, nil)
	ctrl.On("ListTaskSummary", mock.Anything).Return(nil, errors.New("throttled"))

	report := scaler.Run(t.Context(), testConfig())

	assert.Equal(t, internal.StatusOK, report.Status)
	assert.False(t, report.Healed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "list_tasks", report.Errors[0].Step)
}
