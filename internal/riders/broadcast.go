// Package riders simulates the rider-matching broadcast: offering a job to
// candidate riders and collecting their staggered acceptances. Nothing can
// decline; every offer resolves to acceptance unless the broadcast is
// cancelled first.
package riders

import (
	"fmt"
	"sync"
	"time"

	"jamjam-delivery/internal/apperr"
	"jamjam-delivery/internal/domain"
	"jamjam-delivery/internal/logx"
	"jamjam-delivery/internal/sched"
)

// Timings holds the simulated broadcast delays.
type Timings struct {
	// OfferStagger separates consecutive offers; offer i goes out at (i+1)*OfferStagger.
	OfferStagger time.Duration
	// AcceptDelay is how long a rider "thinks" before accepting.
	AcceptDelay time.Duration
	// FinalizeDelay is the pause between the last acceptance and completion.
	FinalizeDelay time.Duration
}

// DefaultTimings returns the production delays.
func DefaultTimings() Timings {
	return Timings{
		OfferStagger:  2 * time.Second,
		AcceptDelay:   time.Second,
		FinalizeDelay: 1500 * time.Millisecond,
	}
}

// Broadcast runs one rider-matching round. Create one per order attempt;
// a cancelled broadcast cannot be restarted.
type Broadcast struct {
	scheduler sched.Scheduler
	timings   Timings
	logger    logx.Logger
	now       func() time.Time

	mu        sync.Mutex
	started   bool
	cancelled bool
	finished  bool
	handles   []sched.Handle
	offered   int
	accepted  []domain.RiderAssignment
	onDone    func([]domain.RiderAssignment)
}

// NewBroadcast creates a broadcast using the given scheduler and timings.
func NewBroadcast(scheduler sched.Scheduler, timings Timings, logger logx.Logger) *Broadcast {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Broadcast{
		scheduler: scheduler,
		timings:   timings,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start offers the job to the first required riders of the pool, in catalog
// order, pairing rider i with segments[i]. onDone runs once after all
// acceptances and the finalize pause, never while the broadcast lock is held.
func (b *Broadcast) Start(pool []domain.Rider, required int, segments []domain.RouteSegment, onDone func([]domain.RiderAssignment)) error {
	if required < 1 || required > len(pool) {
		return fmt.Errorf("%w: need %d riders, pool has %d", apperr.ErrInvalidRiderCount, required, len(pool))
	}
	if len(segments) != required {
		return fmt.Errorf("%w: %d segments for %d riders", apperr.ErrValidation, len(segments), required)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return fmt.Errorf("%w: broadcast already started", apperr.ErrConflict)
	}
	b.started = true
	b.onDone = onDone

	for i := 0; i < required; i++ {
		rider := pool[i]
		segment := segments[i]
		delay := time.Duration(i+1) * b.timings.OfferStagger
		h := b.scheduler.After(delay, func() {
			b.offer(rider, segment, required)
		})
		b.handles = append(b.handles, h)
	}
	b.logger.Info("broadcast started",
		logx.String("event", "broadcast_started"),
		logx.Int("required_riders", required),
	)
	return nil
}

// offer marks the rider as seeing the job and schedules their acceptance.
func (b *Broadcast) offer(rider domain.Rider, segment domain.RouteSegment, required int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancelled {
		return
	}
	b.offered++
	h := b.scheduler.After(b.timings.AcceptDelay, func() {
		b.accept(rider, segment, required)
	})
	b.handles = append(b.handles, h)
}

// accept records the acceptance; the last one schedules finalization.
func (b *Broadcast) accept(rider domain.Rider, segment domain.RouteSegment, required int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancelled {
		return
	}
	b.accepted = append(b.accepted, domain.RiderAssignment{
		Rider:      rider,
		Segment:    segment,
		AcceptedAt: b.now(),
	})
	b.logger.Info("rider accepted",
		logx.String("event", "rider_accepted"),
		logx.String("rider_id", rider.ID),
		logx.Int("segment", segment.Number),
	)
	if len(b.accepted) == required {
		h := b.scheduler.After(b.timings.FinalizeDelay, b.finalize)
		b.handles = append(b.handles, h)
	}
}

func (b *Broadcast) finalize() {
	b.mu.Lock()
	if b.cancelled || b.finished {
		b.mu.Unlock()
		return
	}
	b.finished = true
	done := b.onDone
	assignments := make([]domain.RiderAssignment, len(b.accepted))
	copy(assignments, b.accepted)
	b.mu.Unlock()

	if done != nil {
		done(assignments)
	}
}

// Cancel aborts the broadcast: every pending timer is stopped and any timer
// already in flight becomes a no-op. Accepted-rider state is cleared.
func (b *Broadcast) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancelled || b.finished {
		return
	}
	b.cancelled = true
	for _, h := range b.handles {
		h.Stop()
	}
	b.handles = nil
	b.accepted = nil
	b.logger.Info("broadcast cancelled",
		logx.String("event", "broadcast_cancelled"),
		logx.Int("offered", b.offered),
	)
}

// Accepted returns a copy of the acceptances so far.
func (b *Broadcast) Accepted() []domain.RiderAssignment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.RiderAssignment, len(b.accepted))
	copy(out, b.accepted)
	return out
}

// Offered returns how many riders have seen the offer so far.
func (b *Broadcast) Offered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offered
}
