package riders

import (
	"errors"
	"testing"
	"time"

	"jamjam-delivery/internal/apperr"
	"jamjam-delivery/internal/catalog"
	"jamjam-delivery/internal/domain"
	"jamjam-delivery/internal/logx"
	"jamjam-delivery/internal/sched"
)

func testSegments(n int) []domain.RouteSegment {
	segs := make([]domain.RouteSegment, n)
	for i := range segs {
		segs[i] = domain.RouteSegment{Number: i + 1, Status: domain.SegmentPending}
	}
	return segs
}

func TestSearchCounter_Alternates(t *testing.T) {
	t.Parallel()

	c := NewSearchCounter()
	want := []int{2, 3, 2, 3, 2}
	for i, w := range want {
		got := c.RequiredRiders("A", "B", domain.WeightSmall)
		if got != w {
			t.Fatalf("search %d: expected %d riders, got %d", i+1, w, got)
		}
	}
	if c.Searches() != len(want) {
		t.Fatalf("expected %d searches recorded, got %d", len(want), c.Searches())
	}
}

func TestSearchCounter_IgnoresInputs(t *testing.T) {
	t.Parallel()

	a := NewSearchCounter()
	b := NewSearchCounter()
	if a.RequiredRiders("A", "B", domain.WeightSmall) != b.RequiredRiders("X", "Y", domain.WeightVeryHeavy) {
		t.Fatalf("counter must depend only on call ordinal")
	}
}

func TestBroadcast_AllRidersAccept(t *testing.T) {
	t.Parallel()

	m := sched.NewManual()
	b := NewBroadcast(m, DefaultTimings(), logx.Nop())

	var got []domain.RiderAssignment
	err := b.Start(catalog.Riders(), 2, testSegments(2), func(a []domain.RiderAssignment) {
		got = a
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Offer 1 at 2s, accepts at 3s; offer 2 at 4s, accepts at 5s; finalize at 6.5s.
	m.Advance(5 * time.Second)
	if got != nil {
		t.Fatalf("finalize must wait the post-acceptance pause")
	}
	if len(b.Accepted()) != 2 {
		t.Fatalf("expected 2 acceptances at t=5s, got %d", len(b.Accepted()))
	}

	m.Advance(1500 * time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("expected completion with 2 assignments, got %d", len(got))
	}
	if !domain.ValidAssignments(got, 2) {
		t.Fatalf("assignments must cover segments 1..2: %+v", got)
	}
	if got[0].Rider.ID != "1" || got[1].Rider.ID != "2" {
		t.Fatalf("riders must be taken in catalog order, got %s,%s", got[0].Rider.ID, got[1].Rider.ID)
	}
}

func TestBroadcast_StaggeredAcceptanceTiming(t *testing.T) {
	t.Parallel()

	m := sched.NewManual()
	b := NewBroadcast(m, DefaultTimings(), logx.Nop())
	if err := b.Start(catalog.Riders(), 3, testSegments(3), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Advance(2 * time.Second)
	if b.Offered() != 1 || len(b.Accepted()) != 0 {
		t.Fatalf("t=2s: expected 1 offer, 0 accepts; got %d/%d", b.Offered(), len(b.Accepted()))
	}
	m.Advance(time.Second)
	if len(b.Accepted()) != 1 {
		t.Fatalf("t=3s: expected first acceptance, got %d", len(b.Accepted()))
	}
	m.Advance(4 * time.Second)
	if len(b.Accepted()) != 3 {
		t.Fatalf("t=7s: expected all acceptances, got %d", len(b.Accepted()))
	}
}

func TestBroadcast_CancelMidway(t *testing.T) {
	t.Parallel()

	m := sched.NewManual()
	b := NewBroadcast(m, DefaultTimings(), logx.Nop())

	done := false
	if err := b.Start(catalog.Riders(), 2, testSegments(2), func([]domain.RiderAssignment) { done = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First rider has accepted, second offer not yet out.
	m.Advance(3 * time.Second)
	if len(b.Accepted()) != 1 {
		t.Fatalf("expected 1 acceptance before cancel, got %d", len(b.Accepted()))
	}

	b.Cancel()
	if len(b.Accepted()) != 0 {
		t.Fatalf("cancel must clear accepted-rider state")
	}

	// No timer scheduled before the cancel may mutate state afterwards.
	m.Advance(time.Minute)
	if done {
		t.Fatalf("cancelled broadcast must never complete")
	}
	if len(b.Accepted()) != 0 || b.Offered() != 1 {
		t.Fatalf("stale timers mutated a cancelled broadcast")
	}
}

func TestBroadcast_StartValidation(t *testing.T) {
	t.Parallel()

	m := sched.NewManual()
	pool := catalog.Riders()

	if err := NewBroadcast(m, DefaultTimings(), nil).Start(pool, len(pool)+1, testSegments(len(pool)+1), nil); !errors.Is(err, apperr.ErrInvalidRiderCount) {
		t.Fatalf("oversized required count must fail, got %v", err)
	}
	if err := NewBroadcast(m, DefaultTimings(), nil).Start(pool, 0, nil, nil); !errors.Is(err, apperr.ErrInvalidRiderCount) {
		t.Fatalf("zero required count must fail, got %v", err)
	}
	if err := NewBroadcast(m, DefaultTimings(), nil).Start(pool, 2, testSegments(3), nil); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("segment/rider count mismatch must fail, got %v", err)
	}

	b := NewBroadcast(m, DefaultTimings(), nil)
	if err := b.Start(pool, 2, testSegments(2), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Start(pool, 2, testSegments(2), nil); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("restart must conflict, got %v", err)
	}
}
