package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/apimon/apimon/pkg/errors"
	"github.com/apimon/apimon/pkg/http/response"
	"github.com/apimon/apimon/pkg/monitor"
)

// StartRequest represents the request to start monitoring. Parameters may
// come from the query string or a JSON body; the body wins when present.
type StartRequest struct {
	Endpoint        string `json:"endpoint"`
	IntervalSeconds int    `json:"interval_seconds"`
}

// Handler handles HTTP requests for the monitoring service
type Handler struct {
	service *monitor.Service
}

// NewHandler creates a new monitoring HTTP handler
func NewHandler(service *monitor.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the monitoring routes with the provided router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/monitor", func(r chi.Router) {
		r.Post("/start", response.Middleware(h.StartMonitoring))
		r.Post("/stop", response.Middleware(h.StopMonitoring))
		r.Get("/status", response.Middleware(h.GetStatus))
	})
}

// @Summary Start monitoring
// @Description Start periodic checks against the given endpoint
// @Tags monitor
// @Accept json
// @Produce json
// @Param endpoint query string false "Endpoint URL to monitor"
// @Param interval_seconds query int false "Poll interval in seconds (default 60)"
// @Param request body StartRequest false "Start parameters"
// @Success 200 {object} monitor.StartConfirmation
// @Failure 400 {object} response.ErrorResponse "Already active or invalid parameters"
// @Router /monitor/start [post]
func (h *Handler) StartMonitoring(w http.ResponseWriter, r *http.Request) error {
	req, err := parseStartRequest(r)
	if err != nil {
		return err
	}

	confirmation, err := h.service.StartMonitoring(req.Endpoint, req.IntervalSeconds)
	if err != nil {
		return err
	}

	return response.WriteJSON(w, http.StatusOK, confirmation)
}

// @Summary Stop monitoring
// @Description Stop the current monitoring job
// @Tags monitor
// @Produce json
// @Success 200 {object} monitor.StopConfirmation
// @Failure 400 {object} response.ErrorResponse "No active monitoring"
// @Router /monitor/stop [post]
func (h *Handler) StopMonitoring(w http.ResponseWriter, r *http.Request) error {
	confirmation, err := h.service.StopMonitoring()
	if err != nil {
		return err
	}

	return response.WriteJSON(w, http.StatusOK, confirmation)
}

// @Summary Monitoring status
// @Description Get the current monitoring configuration
// @Tags monitor
// @Produce json
// @Success 200 {object} monitor.Status
// @Router /monitor/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) error {
	return response.WriteJSON(w, http.StatusOK, h.service.GetStatus())
}

func parseStartRequest(r *http.Request) (*StartRequest, error) {
	req := &StartRequest{
		Endpoint: r.URL.Query().Get("endpoint"),
	}

	if raw := r.URL.Query().Get("interval_seconds"); raw != "" {
		interval, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewValidationError("interval_seconds must be an integer", nil)
		}
		req.IntervalSeconds = interval
	}

	if r.Body != nil && r.ContentLength != 0 {
		var body StartRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, errors.NewValidationError("invalid request body", nil)
		}
		if body.Endpoint != "" {
			req.Endpoint = body.Endpoint
		}
		if body.IntervalSeconds != 0 {
			req.IntervalSeconds = body.IntervalSeconds
		}
	}

	return req, nil
}
