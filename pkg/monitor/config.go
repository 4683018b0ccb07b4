package monitor

import (
	"sync"
	"time"

	"github.com/apimon/apimon/pkg/scheduler"
)

// JobID is the fixed scheduler identity for the monitoring job. At most
// one job is ever registered under it.
const JobID = "api_monitor"

// DefaultIntervalSeconds is used when a start request omits the interval.
const DefaultIntervalSeconds = 60

// Config is the single mutable monitoring configuration. Endpoint,
// interval and job are set exactly while monitoring is active; all reads
// and writes happen under mu so concurrent start/stop requests and ticks
// never observe a half-cleared state.
type Config struct {
	mu       sync.Mutex
	active   bool
	endpoint string
	interval time.Duration
	job      scheduler.Handle
}

// NewConfig returns a configuration in the inactive state.
func NewConfig() *Config {
	return &Config{}
}

// Snapshot returns a consistent view of the current configuration.
func (c *Config) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{IsActive: c.active}
	if c.active {
		endpoint := c.endpoint
		interval := int(c.interval / time.Second)
		status.Endpoint = &endpoint
		status.Interval = &interval
	}
	return status
}
