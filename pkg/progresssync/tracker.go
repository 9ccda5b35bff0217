// Package progresssync reconciles an ephemeral, client-local quiz progress
// counter with the server-held activity record. The counter is updated
// synchronously as the learner answers questions so the UI never waits on
// the network; a timed loop pushes the latest value to the server, sending
// only when something changed since the last acknowledged update.
package progresssync

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval matches the UI polling cadence.
const DefaultInterval = 500 * time.Millisecond

// Snapshot is one observation of the local counters. Both fields only ever
// grow within a session.
type Snapshot struct {
	Progress int
	Mistakes int
}

// Reporter delivers a progress snapshot to the server. Implementations must
// be idempotent: the tracker retries the same snapshot after a failure.
type Reporter interface {
	ReportProgress(ctx context.Context, courseID string, progress, mistakes int) error
}

// Tracker owns the session-scoped counters for a single course and the
// sync loop that reconciles them with the server.
type Tracker struct {
	courseID string
	reporter Reporter
	interval time.Duration
	log      zerolog.Logger

	mu    sync.Mutex
	local Snapshot

	// Latest-value channel between the answer path and the sync loop.
	// Capacity 1 with drop-old semantics: the loop only ever cares about
	// the newest snapshot, never a backlog.
	updates chan Snapshot
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithInterval overrides the sync cadence.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithLogger attaches a logger to the sync loop.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Tracker) {
		t.log = log
	}
}

// New creates a tracker for one course. Call Run to start the sync loop.
func New(courseID string, reporter Reporter, opts ...Option) *Tracker {
	t := &Tracker{
		courseID: courseID,
		reporter: reporter,
		interval: DefaultInterval,
		log:      zerolog.Nop(),
		updates:  make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordAnswer registers one answered question. It never blocks, so the UI
// can call it from the answer handler directly. Publishing happens under
// the same lock as the increment: snapshots enter the channel in counter
// order, so a stale snapshot can never displace a newer one.
func (t *Tracker) RecordAnswer(correct bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.local.Progress++
	if !correct {
		t.local.Mistakes++
	}
	t.publish(t.local)
}

// Local returns the current session-scoped counters, for UI rendering
// between sync ticks.
func (t *Tracker) Local() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.local
}

// publish replaces whatever snapshot is pending with the newest one. It
// never blocks; callers hold t.mu.
func (t *Tracker) publish(snap Snapshot) {
	for {
		select {
		case t.updates <- snap:
			return
		default:
			// Channel full: drop the stale snapshot and retry
			select {
			case <-t.updates:
			default:
			}
		}
	}
}

// Run drives the sync loop until ctx is canceled. On each tick it sends the
// latest snapshot if it differs from the last one the server acknowledged;
// a failed send is retried on the next tick with the then-current value.
// Skipped or failed ticks are harmless: the server applies updates
// idempotently and monotonically.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var pending Snapshot
	var acked Snapshot

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case snap := <-t.updates:
				pending = snap
			default:
			}

			if pending == acked {
				continue
			}

			if err := t.reporter.ReportProgress(ctx, t.courseID, pending.Progress, pending.Mistakes); err != nil {
				t.log.Debug().
					Err(err).
					Str("course_id", t.courseID).
					Int("progress", pending.Progress).
					Msg("Progress sync failed, will retry next tick")
				continue
			}

			acked = pending
		}
	}
}
