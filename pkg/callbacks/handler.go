package callbacks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Handler handles HTTP requests for externally-pushed callbacks
type Handler struct {
	service *Service
}

// NewHandler creates a new callback handler
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the callback routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/callback", h.HandleCallback)
	r.Get("/callbacks", h.ListCallbacks)
}

// @Summary Receive a callback
// @Description Accept an arbitrary JSON payload pushed from outside and log it
// @Tags callbacks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Malformed JSON payload"
// @Router /callback [post]
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var payload interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid JSON payload"})
		return
	}

	h.service.Record(payload)

	render.JSON(w, r, map[string]string{"status": "Callback received"})
}

// @Summary List recent callbacks
// @Description List the most recently received callbacks, newest first
// @Tags callbacks
// @Produce json
// @Success 200 {array} Event
// @Router /callbacks [get]
func (h *Handler) ListCallbacks(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.List())
}
