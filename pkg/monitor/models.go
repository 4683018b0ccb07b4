package monitor

import (
	"time"
)

// Status is the read-only view of the monitoring configuration. Endpoint
// and Interval are null while monitoring is inactive.
type Status struct {
	IsActive bool    `json:"is_active"`
	Endpoint *string `json:"endpoint"`
	Interval *int    `json:"interval"`
}

// StartConfirmation is returned when monitoring starts.
type StartConfirmation struct {
	Status   string `json:"status"`
	Endpoint string `json:"endpoint"`
	Interval int    `json:"interval"`
}

// StopConfirmation is returned when monitoring stops.
type StopConfirmation struct {
	Status string `json:"status"`
}

// CheckResult is the structured record emitted for a completed check.
// It is produced per tick, written to the log sinks and discarded.
type CheckResult struct {
	// Timestamp is when the check completed.
	Timestamp time.Time `json:"timestamp"`
	// StatusCode returned by the monitored endpoint.
	StatusCode int `json:"status_code"`
	// ResponseTime is the wall-clock duration in seconds, rounded to
	// two decimals.
	ResponseTime float64 `json:"response_time"`
	// ResponseSize is the response body size in bytes.
	ResponseSize int `json:"response_size"`
	// Endpoint the check was issued against.
	Endpoint string `json:"endpoint"`
}

// CheckFailure is the structured record emitted when a check could not
// complete (connection error, timeout, DNS failure).
type CheckFailure struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`

	// Cause keeps the underlying transport error for inspection; it is
	// not part of the emitted record.
	Cause error `json:"-"`
}

// Outcome is the explicit result of one check tick: exactly one of
// Result or Failure is set. Tick failures are fully contained here and
// never reach the scheduler.
type Outcome struct {
	Result  *CheckResult
	Failure *CheckFailure
}

// OK reports whether the tick produced a completed response.
func (o Outcome) OK() bool {
	return o.Result != nil
}
