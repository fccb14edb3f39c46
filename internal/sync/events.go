// Package sync keeps denormalized catalog fields consistent with the
// underlying state: availability windows, popularity counters, and workshop
// lifecycle, recomputed on fixed intervals or on demand.
package sync

import (
	stdsync "sync"
	"time"
)

// JobRun describes one completed run of a scheduled or manual job. It is
// transient observability data, never stored as domain state.
type JobRun struct {
	Job       string
	Start     time.Time
	Duration  time.Duration
	Processed int
	Failures  int
	Err       error
}

// Listener receives job run notifications.
type Listener func(JobRun)

// Notifier is an in-process publish/subscribe channel for job runs, scoped
// to the scheduler's lifetime. Listeners are invoked synchronously in
// subscription order.
type Notifier struct {
	mu        stdsync.RWMutex
	listeners []Listener
}

// Subscribe registers a listener for all future job runs.
func (n *Notifier) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Publish delivers a job run to every listener.
func (n *Notifier) Publish(run JobRun) {
	n.mu.RLock()
	listeners := make([]Listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, l := range listeners {
		l(run)
	}
}
