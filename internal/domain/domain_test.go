package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDeliveryStatus_Rank_Order(t *testing.T) {
	t.Parallel()

	ordered := []DeliveryStatus{
		StatusIdle, StatusSearching, StatusAssigned, StatusPickedUp, StatusInTransit, StatusDelivered,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Fatalf("expected %s < %s", ordered[i-1], ordered[i])
		}
	}
	if DeliveryStatus("bogus").Rank() != -1 {
		t.Fatalf("unknown status must rank -1")
	}
}

func TestDeliveryStatus_CanAdvanceTo(t *testing.T) {
	t.Parallel()

	if !StatusSearching.CanAdvanceTo(StatusAssigned) {
		t.Fatalf("searching -> assigned must be allowed")
	}
	if !StatusSearching.CanAdvanceTo(StatusPickedUp) {
		t.Fatalf("forward skip must be allowed")
	}
	if StatusInTransit.CanAdvanceTo(StatusAssigned) {
		t.Fatalf("regression must be rejected")
	}
	if StatusIdle.CanAdvanceTo("bogus") {
		t.Fatalf("unknown status must be rejected")
	}
}

func TestStage_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []Stage{
		StageBooking, StageContactDetails, StageRiderMatching,
		StageDeliveryOptions, StageInsuranceOptions, StageWhoPays,
		StageCollectCash, StagePayment, StageTracking, StageDelivered,
	} {
		if !s.Valid() {
			t.Fatalf("stage %q should be valid", s)
		}
	}
	if Stage("3.5").Valid() {
		t.Fatalf("fractional step markers are not stages")
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	valid := []string{"+233 55 234 5678", "+233241234567", "+71234567890", "0551234567", "055 234 5678"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Fatalf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "+1", "call me", "nope"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Fatalf("expected %q to be invalid", p)
		}
	}
}

func TestChained(t *testing.T) {
	t.Parallel()

	segs := []RouteSegment{
		{Number: 1, StartPoint: "A", EndPoint: "Hub"},
		{Number: 2, StartPoint: "Hub", EndPoint: "B"},
	}
	if !Chained(segs, "A", "B") {
		t.Fatalf("expected chained segments")
	}
	if Chained(segs, "A", "C") {
		t.Fatalf("wrong dropoff must fail")
	}
	broken := []RouteSegment{
		{Number: 1, StartPoint: "A", EndPoint: "Hub"},
		{Number: 2, StartPoint: "Elsewhere", EndPoint: "B"},
	}
	if Chained(broken, "A", "B") {
		t.Fatalf("gap in chain must fail")
	}
}

func TestFrontierValid(t *testing.T) {
	t.Parallel()

	ok := [][]SegmentStatus{
		{SegmentInProgress, SegmentPending, SegmentPending},
		{SegmentCompleted, SegmentInProgress, SegmentPending},
		{SegmentCompleted, SegmentCompleted, SegmentCompleted},
		{SegmentPending, SegmentPending},
	}
	for _, statuses := range ok {
		if !FrontierValid(mkSegments(statuses)) {
			t.Fatalf("expected valid frontier: %v", statuses)
		}
	}
	bad := [][]SegmentStatus{
		{SegmentPending, SegmentInProgress},
		{SegmentCompleted, SegmentPending, SegmentInProgress},
		{SegmentInProgress, SegmentInProgress},
		{SegmentCompleted, SegmentPending, SegmentPending},
	}
	for _, statuses := range bad {
		if FrontierValid(mkSegments(statuses)) {
			t.Fatalf("expected invalid frontier: %v", statuses)
		}
	}
}

func mkSegments(statuses []SegmentStatus) []RouteSegment {
	segs := make([]RouteSegment, len(statuses))
	for i, s := range statuses {
		segs[i] = RouteSegment{Number: i + 1, Status: s}
	}
	return segs
}

func TestValidAssignments(t *testing.T) {
	t.Parallel()

	now := time.Now()
	mk := func(numbers ...int) []RiderAssignment {
		out := make([]RiderAssignment, len(numbers))
		for i, n := range numbers {
			out[i] = RiderAssignment{
				Rider:      Rider{ID: "r", PricePerSegment: decimal.New(850, -2)},
				Segment:    RouteSegment{Number: n},
				AcceptedAt: now,
			}
		}
		return out
	}

	if !ValidAssignments(mk(1, 2, 3), 3) {
		t.Fatalf("1..3 must be valid for required=3")
	}
	if ValidAssignments(mk(1, 1), 2) {
		t.Fatalf("duplicate segment numbers must fail")
	}
	if ValidAssignments(mk(1, 3), 2) {
		t.Fatalf("gap must fail")
	}
	if ValidAssignments(mk(1), 2) {
		t.Fatalf("missing assignment must fail")
	}
}

func TestNewOrder_Initial(t *testing.T) {
	t.Parallel()

	o := NewOrder()
	if o.Stage != StageBooking || o.Status != StatusIdle {
		t.Fatalf("fresh order must start at booking/idle, got %s/%s", o.Stage, o.Status)
	}
	if o.RequiredRiders != 1 || o.CurrentSegment != 1 {
		t.Fatalf("fresh order rider counters must be 1")
	}
	if !o.BasePrice.IsZero() || !o.TotalPrice.IsZero() {
		t.Fatalf("fresh order must have zero prices")
	}
}
