package scheduler

import (
	"sync"
	"time"

	"github.com/apimon/apimon/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler registers recurring jobs by identity. Implementations dispatch
// each due job on its own goroutine so a slow job never blocks the timer
// or request handling.
type Scheduler interface {
	// AddJob registers cmd to run every interval, starting after the first
	// interval elapses. If a job with the same id already exists it is
	// replaced atomically.
	AddJob(id string, interval time.Duration, cmd func()) (Handle, error)
	// RemoveJob cancels the job registered under id. Unknown ids are a no-op.
	RemoveJob(id string)
	// Start begins dispatching due jobs.
	Start()
	// Shutdown halts dispatch and waits for in-flight jobs to finish.
	Shutdown()
}

// Handle is an opaque reference to a registered recurring job.
type Handle interface {
	// Remove cancels future executions. It is idempotent: removing an
	// already-removed or stale handle must not fail.
	Remove()
}

// CronScheduler implements Scheduler on top of robfig/cron.
type CronScheduler struct {
	cron    *cron.Cron
	logger  *logger.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewCronScheduler creates a scheduler. Call Start before expecting jobs
// to fire.
func NewCronScheduler(logger *logger.Logger) *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// AddJob registers cmd under id, replacing any existing entry with the
// same id. The first execution happens one full interval after
// registration, not immediately.
func (s *CronScheduler) AddJob(id string, interval time.Duration, cmd func()) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.entries[id]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, id)
		s.logger.Warn("Replaced existing scheduled job", "id", id)
	}

	entryID := s.cron.Schedule(cron.Every(interval), cron.FuncJob(cmd))
	s.entries[id] = entryID
	s.logger.Info("Scheduled job", "id", id, "interval", interval.String())

	return &cronHandle{scheduler: s, id: id, entryID: entryID}, nil
}

// RemoveJob cancels the job registered under id, if any.
func (s *CronScheduler) RemoveJob(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *CronScheduler) removeLocked(id string) {
	if entryID, exists := s.entries[id]; exists {
		s.cron.Remove(entryID)
		delete(s.entries, id)
		s.logger.Info("Removed scheduled job", "id", id)
	}
}

// Start begins dispatching due jobs on the cron's timer goroutine.
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Shutdown stops the timer and waits for any running jobs to complete.
func (s *CronScheduler) Shutdown() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// cronHandle ties a registered entry back to its scheduler. Remove only
// cancels the entry if it is still the current one for the id, so a stale
// handle left over from a replace cannot cancel its successor.
type cronHandle struct {
	scheduler *CronScheduler
	id        string
	entryID   cron.EntryID
}

func (h *cronHandle) Remove() {
	h.scheduler.mu.Lock()
	defer h.scheduler.mu.Unlock()

	current, exists := h.scheduler.entries[h.id]
	if !exists || current != h.entryID {
		return
	}
	h.scheduler.removeLocked(h.id)
}
