package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apimon/apimon/pkg/logger"
	"github.com/apimon/apimon/pkg/metrics"
	"github.com/apimon/apimon/pkg/monitor"
	"github.com/apimon/apimon/pkg/scheduler"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	log := logger.NewDefault()
	sched := scheduler.NewCronScheduler(log)
	t.Cleanup(sched.Shutdown)

	service := monitor.NewService(monitor.NewConfig(), sched, log, metrics.New(), io.Discard)
	handler := NewHandler(service)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, router *chi.Mux, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStartViaQueryParams(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/start?endpoint=https://example.test&interval_seconds=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var confirmation monitor.StartConfirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmation))
	assert.Equal(t, "Monitoring started", confirmation.Status)
	assert.Equal(t, "https://example.test", confirmation.Endpoint)
	assert.Equal(t, 5, confirmation.Interval)
}

func TestStartViaJSONBody(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(StartRequest{Endpoint: "https://example.test", IntervalSeconds: 30})
	rec := doRequest(t, router, http.MethodPost, "/monitor/start", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var confirmation monitor.StartConfirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmation))
	assert.Equal(t, 30, confirmation.Interval)
}

func TestStartDefaultsInterval(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/start?endpoint=https://example.test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var confirmation monitor.StartConfirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmation))
	assert.Equal(t, monitor.DefaultIntervalSeconds, confirmation.Interval)
}

func TestStartTwiceReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/start?endpoint=https://example.test&interval_seconds=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/monitor/start?endpoint=https://other.test&interval_seconds=10", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Status must still reflect the first start.
	rec = doRequest(t, router, http.MethodGet, "/monitor/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status monitor.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.NotNil(t, status.Endpoint)
	assert.Equal(t, "https://example.test", *status.Endpoint)
}

func TestStartWithoutEndpointReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/start", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartWithBadIntervalReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/start?endpoint=https://example.test&interval_seconds=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStopWhileInactiveReturns400(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/stop", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartStopStatusLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/monitor/start?endpoint=https://example.test&interval_seconds=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/monitor/stop", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var confirmation monitor.StopConfirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmation))
	assert.Equal(t, "Monitoring stopped", confirmation.Status)

	rec = doRequest(t, router, http.MethodGet, "/monitor/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status monitor.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.IsActive)
	assert.Nil(t, status.Endpoint)
	assert.Nil(t, status.Interval)
}

func TestStatusWhileInactive(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/monitor/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_active":false,"endpoint":null,"interval":null}`, rec.Body.String())
}
