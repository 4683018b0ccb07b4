package monitor

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pkg/errors"

	apperrors "github.com/apimon/apimon/pkg/errors"
	"github.com/apimon/apimon/pkg/logger"
	"github.com/apimon/apimon/pkg/metrics"
	"github.com/apimon/apimon/pkg/scheduler"
)

// Service owns the monitoring lifecycle: it mutates the single Config
// through start/stop, answers status reads, and runs the check routine
// the scheduler invokes on each tick.
type Service struct {
	config    *Config
	scheduler scheduler.Scheduler
	client    *http.Client
	logger    *logger.Logger
	metrics   *metrics.Metrics

	// sink mirrors every structured record as one-line JSON, so hosting
	// infrastructure can capture it from stdout.
	sink io.Writer
}

// NewService creates a monitoring service around the given configuration
// and scheduler.
func NewService(config *Config, sched scheduler.Scheduler, logger *logger.Logger, m *metrics.Metrics, sink io.Writer) *Service {
	if config == nil {
		config = NewConfig()
	}
	if sink == nil {
		sink = io.Discard
	}

	return &Service{
		config:    config,
		scheduler: sched,
		client:    &http.Client{},
		logger:    logger,
		metrics:   m,
		sink:      sink,
	}
}

// StartMonitoring registers the recurring check job for the endpoint.
// intervalSeconds of zero means the 60 second default. Fails without any
// mutation when monitoring is already active.
func (s *Service) StartMonitoring(endpoint string, intervalSeconds int) (*StartConfirmation, error) {
	if intervalSeconds == 0 {
		intervalSeconds = DefaultIntervalSeconds
	}

	if err := validation.Validate(endpoint, validation.Required, is.URL); err != nil {
		return nil, apperrors.NewValidationError("invalid endpoint", map[string]interface{}{
			"endpoint": err.Error(),
		})
	}
	if err := validation.Validate(intervalSeconds, validation.Min(1)); err != nil {
		return nil, apperrors.NewValidationError("invalid interval", map[string]interface{}{
			"interval_seconds": err.Error(),
		})
	}

	s.config.mu.Lock()
	defer s.config.mu.Unlock()

	if s.config.active {
		return nil, apperrors.NewValidationError("monitoring is already active", nil)
	}

	interval := time.Duration(intervalSeconds) * time.Second

	// Replace-on-existing: the scheduler overwrites any job already
	// registered under this identity, so a leftover entry cannot cause
	// a double registration.
	handle, err := s.scheduler.AddJob(JobID, interval, func() {
		s.Check(context.Background())
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to schedule monitoring job", err, nil)
	}

	s.config.active = true
	s.config.endpoint = endpoint
	s.config.interval = interval
	s.config.job = handle

	s.logger.Info("Monitoring started", "endpoint", endpoint, "interval_seconds", intervalSeconds)

	return &StartConfirmation{
		Status:   "Monitoring started",
		Endpoint: endpoint,
		Interval: intervalSeconds,
	}, nil
}

// StopMonitoring deregisters the check job and resets the configuration
// to the inactive state. Fails when monitoring is not active.
func (s *Service) StopMonitoring() (*StopConfirmation, error) {
	s.config.mu.Lock()
	defer s.config.mu.Unlock()

	if !s.config.active {
		return nil, apperrors.NewValidationError("no active monitoring", nil)
	}

	if s.config.job != nil {
		s.config.job.Remove()
		s.config.job = nil
	}

	s.config.active = false
	s.config.endpoint = ""
	s.config.interval = 0

	s.logger.Info("Monitoring stopped")

	return &StopConfirmation{Status: "Monitoring stopped"}, nil
}

// GetStatus returns the current configuration without side effects.
func (s *Service) GetStatus() Status {
	return s.config.Snapshot()
}

// Check performs one tick: a single GET against the configured endpoint.
// The outcome is emitted to the log sinks and returned for inspection;
// failures never propagate, so a bad tick cannot cancel future ticks.
func (s *Service) Check(ctx context.Context) Outcome {
	s.config.mu.Lock()
	endpoint := s.config.endpoint
	s.config.mu.Unlock()

	if endpoint == "" {
		// A tick can race a concurrent stop; back off without a request.
		s.logger.Error("No endpoint configured for monitoring")
		return Outcome{Failure: &CheckFailure{
			Error:     "no endpoint configured for monitoring",
			Timestamp: time.Now(),
		}}
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return s.recordFailure(errors.Wrap(err, "building monitoring request"), start)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return s.recordFailure(errors.Wrap(err, "monitoring request failed"), start)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.recordFailure(errors.Wrap(err, "reading monitoring response"), start)
	}
	duration := time.Since(start)

	result := &CheckResult{
		Timestamp:    time.Now(),
		StatusCode:   resp.StatusCode,
		ResponseTime: roundSeconds(duration),
		ResponseSize: len(body),
		Endpoint:     endpoint,
	}

	s.logger.Info("API check result",
		"status_code", result.StatusCode,
		"response_time", result.ResponseTime,
		"response_size", result.ResponseSize,
		"endpoint", result.Endpoint,
	)
	s.emit(result)
	s.metrics.ObserveCheck(result.StatusCode, duration.Seconds())

	if resp.StatusCode >= http.StatusBadRequest {
		s.logger.Error("API error", "status_code", resp.StatusCode, "body", string(body))
	}

	return Outcome{Result: result}
}

// recordFailure contains a transport-level failure: logged, mirrored to
// the machine-readable sink, counted, and returned as an error outcome.
func (s *Service) recordFailure(cause error, start time.Time) Outcome {
	failure := &CheckFailure{
		Error:     "Monitoring failed: " + cause.Error(),
		Timestamp: time.Now(),
		Cause:     cause,
	}

	s.logger.Error(failure.Error)
	s.emit(failure)
	s.metrics.ObserveFailure(time.Since(start).Seconds())

	return Outcome{Failure: failure}
}

func (s *Service) emit(record interface{}) {
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Error("Failed to encode check record", "error", err)
		return
	}
	s.sink.Write(append(data, '\n'))
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
