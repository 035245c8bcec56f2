package websocket

import (
	"log"
	"sync"
	"time"
)

// DefaultSweepPeriod is how often the monitor probes open connections.
const DefaultSweepPeriod = 30 * time.Second

// Monitor detects and reaps unresponsive connections. Every period it
// terminates the connections that did not answer the previous probe, then
// probes the rest again. Termination is normal lifecycle: the reaped
// connection goes through the same teardown as an explicit leave. A slow
// but alive peer losing its connection is an accepted failure mode.
type Monitor struct {
	period  time.Duration
	clients map[*Client]struct{}
	mu      sync.Mutex
	done    chan struct{}
	once    sync.Once
}

// NewMonitor creates a monitor with the given sweep period. A zero or
// negative period falls back to the default.
func NewMonitor(period time.Duration) *Monitor {
	if period <= 0 {
		period = DefaultSweepPeriod
	}
	return &Monitor{
		period:  period,
		clients: make(map[*Client]struct{}),
		done:    make(chan struct{}),
	}
}

// Run sweeps until Stop is called.
func (m *Monitor) Run() {
	ticker := time.NewTicker(m.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

// Stop ends the sweep loop. Open connections are left to close on their own.
func (m *Monitor) Stop() {
	m.once.Do(func() { close(m.done) })
}

func (m *Monitor) track(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c] = struct{}{}
}

func (m *Monitor) untrack(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, c)
}

// sweep terminates the connections that never confirmed the previous probe
// and sends the next probe to everyone else.
func (m *Monitor) sweep() {
	m.mu.Lock()
	clients := make([]*Client, 0, len(m.clients))
	for c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.Unlock()

	for _, c := range clients {
		if !c.confirmAlive() {
			log.Printf("Terminating unresponsive connection %s", c.ID())
			c.Close()
			continue
		}
		c.ping()
	}
}
