package internal

import (
	"fmt"
	"math"
)

// stoppedTaskRatio is the share of recently known task attempts that must
// report STOPPED before churn alone triggers a heal.
const stoppedTaskRatio = 0.2

// ServiceState is a read-only snapshot of the managed service, assembled
// fresh each cycle from the orchestration API.
type ServiceState struct {
	DesiredCount     int
	RunningCount     int
	TotalKnownTasks  int
	StoppedTaskCount int
}

// HealthDecision is the outcome of the health policy for one cycle.
type HealthDecision struct {
	ShouldHeal bool
	Reason     string
}

// DecideHealth determines whether the service should be force-redeployed.
//
// Two independent signals trigger a heal: the service running fewer tasks
// than desired (the orchestration layer hasn't caught up, or tasks are
// crash-looping), or at least a fifth of recently known task attempts having
// stopped (a churn signal suggesting repeated crashes rather than a one-off).
// This is a blunt, idempotent remediation trigger, not a diagnostic
// classifier.
func DecideHealth(state ServiceState) HealthDecision {
	stoppedThreshold := max(1, int(math.Ceil(stoppedTaskRatio*float64(max(1, state.TotalKnownTasks)))))

	switch {
	case state.RunningCount < state.DesiredCount:
		return HealthDecision{
			ShouldHeal: true,
			Reason: fmt.Sprintf(
				"service under-provisioned: running=%d desired=%d", state.RunningCount, state.DesiredCount,
			),
		}
	case state.StoppedTaskCount >= stoppedThreshold:
		return HealthDecision{
			ShouldHeal: true,
			Reason: fmt.Sprintf(
				"task churn: stopped=%d of %d known tasks (threshold %d)",
				state.StoppedTaskCount, state.TotalKnownTasks, stoppedThreshold,
			),
		}
	default:
		return HealthDecision{}
	}
}
