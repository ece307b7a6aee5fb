package internal

// Forecast extrapolates a metric series stepsAhead sampling periods past the
// last observed sample using Holt's linear trend method (double exponential
// smoothing, no seasonality).
//
// Alpha controls level responsiveness, beta controls trend responsiveness;
// both must be in (0, 1). The series is treated as ordered oldest-first.
//
// Degenerate inputs return defined values rather than errors: an empty series
// yields 0 (callers must treat that as "no signal", not zero load) and a
// single-sample series yields that sample, since there is no trend to speak
// of. The result is never negative.
func Forecast(series []float64, alpha, beta float64, stepsAhead int) float64 {
	if len(series) == 0 {
		return 0.0
	}

	if len(series) == 1 {
		return series[0]
	}

	level := series[0]
	trend := series[1] - series[0]

	for _, value := range series[1:] {
		// The trend update must see the level from the previous
		// iteration, not the one just computed.
		lastLevel := level
		level = alpha*value + (1-alpha)*(level+trend)
		trend = beta*(level-lastLevel) + (1-beta)*trend
	}

	forecast := level + trend*float64(stepsAhead)
	if forecast < 0 {
		return 0.0
	}

	return forecast
}
