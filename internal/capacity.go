package internal

import (
	"fmt"
	"math"
)

// ScalingDirection indicates which way, if any, the service should be scaled.
type ScalingDirection string

const (
	ScalingDirectionNone ScalingDirection = "none"
	ScalingDirectionUp   ScalingDirection = "up"
	ScalingDirectionDown ScalingDirection = "down"
)

// Scaling down requires the forecast to sit comfortably below the per-task
// target, not just below it, so that noisy short-term dips don't cause
// capacity flapping.
const scaleDownForecastFactor = 0.7

// CapacityDecision is the outcome of the capacity policy for one cycle.
type CapacityDecision struct {
	// RequiredCount is the task count the policy arrived at. It is always
	// at least 1: this policy never scales a service to zero.
	RequiredCount int

	Direction ScalingDirection

	// Comments explain how the decision was reached.
	Comments []string
}

// DecideCapacity converts a forecast utilization value into a required task
// count and a scaling direction.
//
// The forecast is assumed to be an average per-task statistic (e.g., average
// CPU utilization per running task), and targetPerTask the desired
// steady-state value each task should carry. The required count is then
// max(1, ceil(forecast * desiredCount / targetPerTask)).
//
// Scale-up is eager: any required > desired scales immediately. Scale-down is
// conservative: it needs both a reduction of at least one task and a forecast
// below 70% of the target. Malformed inputs (non-positive target, non-finite
// forecast) fail safe by keeping the current desired count.
func DecideCapacity(forecast float64, desiredCount int, targetPerTask float64) CapacityDecision {
	if targetPerTask <= 0 || math.IsNaN(targetPerTask) || math.IsInf(targetPerTask, 0) {
		return CapacityDecision{
			RequiredCount: max(1, desiredCount),
			Direction:     ScalingDirectionNone,
			Comments:      []string{fmt.Sprintf("invalid per-task target %v, keeping current capacity", targetPerTask)},
		}
	}

	if math.IsNaN(forecast) || math.IsInf(forecast, 0) {
		return CapacityDecision{
			RequiredCount: max(1, desiredCount),
			Direction:     ScalingDirectionNone,
			Comments:      []string{fmt.Sprintf("non-finite forecast %v, keeping current capacity", forecast)},
		}
	}

	required := max(1, int(math.Ceil(forecast*float64(desiredCount)/targetPerTask)))

	switch {
	case required > desiredCount:
		return CapacityDecision{
			RequiredCount: required,
			Direction:     ScalingDirectionUp,
			Comments: []string{fmt.Sprintf(
				"forecast %.2f needs %d tasks at target %.2f per task", forecast, required, targetPerTask,
			)},
		}
	case required < desiredCount:
		if desiredCount-required >= 1 && forecast < scaleDownForecastFactor*targetPerTask {
			return CapacityDecision{
				RequiredCount: required,
				Direction:     ScalingDirectionDown,
				Comments: []string{fmt.Sprintf(
					"forecast %.2f is well below target %.2f, shrinking to %d tasks", forecast, targetPerTask, required,
				)},
			}
		}

		return CapacityDecision{
			RequiredCount: desiredCount,
			Direction:     ScalingDirectionNone,
			Comments:      []string{"forecast below target but not enough to scale down safely"},
		}
	default:
		return CapacityDecision{
			RequiredCount: desiredCount,
			Direction:     ScalingDirectionNone,
			Comments:      []string{"service exactly at the right size"},
		}
	}
}
