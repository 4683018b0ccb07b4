package callbacks

import (
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/apimon/apimon/pkg/logger"
)

// maxRetained bounds the in-memory event list; older events are dropped.
const maxRetained = 100

// Event is a callback received from the outside world. The payload is
// arbitrary JSON and is kept as-is.
type Event struct {
	ID         string      `json:"id"`
	ReceivedAt time.Time   `json:"received_at"`
	Payload    interface{} `json:"payload"`
}

// Service records received callbacks in memory.
type Service struct {
	logger *logger.Logger

	mu     sync.Mutex
	events []Event
}

// NewService creates a callback recording service.
func NewService(logger *logger.Logger) *Service {
	return &Service{logger: logger}
}

// Record logs a received payload and retains it, newest first.
func (s *Service) Record(payload interface{}) Event {
	event := Event{
		ID:         shortuuid.New(),
		ReceivedAt: time.Now(),
		Payload:    payload,
	}

	s.logger.Info("Received callback", "id", event.ID, "payload", payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]Event{event}, s.events...)
	if len(s.events) > maxRetained {
		s.events = s.events[:maxRetained]
	}

	return event
}

// List returns the retained events, newest first.
func (s *Service) List() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]Event, len(s.events))
	copy(events, s.events)
	return events
}
