package domain

import "github.com/shopspring/decimal"

// RouteSegment is one rider's contiguous leg of the delivery route.
// Segments chain: segment[i].EndPoint == segment[i+1].StartPoint.
type RouteSegment struct {
	Number           int
	StartPoint       string
	EndPoint         string
	DistanceKm       decimal.Decimal
	EstimatedTimeMin int
	Status           SegmentStatus
}

// Chained reports whether the segments cover pickup to dropoff contiguously.
func Chained(segments []RouteSegment, pickup, dropoff string) bool {
	if len(segments) == 0 {
		return false
	}
	if segments[0].StartPoint != pickup || segments[len(segments)-1].EndPoint != dropoff {
		return false
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Number != segments[i-1].Number+1 {
			return false
		}
		if segments[i].StartPoint != segments[i-1].EndPoint {
			return false
		}
	}
	return true
}

// FrontierValid checks the segment status invariant: completed segments are
// exactly {1..k}, in_progress is exactly {k+1} once the route has started
// (or empty when k equals the segment count), everything after is pending.
// An all-pending route is the valid not-yet-started state.
func FrontierValid(segments []RouteSegment) bool {
	i := 0
	for i < len(segments) && segments[i].Status == SegmentCompleted {
		i++
	}
	completed := i
	if i < len(segments) && segments[i].Status == SegmentInProgress {
		i++
	} else if completed > 0 && i < len(segments) {
		// a started, unfinished route must have an active segment
		return false
	}
	for ; i < len(segments); i++ {
		if segments[i].Status != SegmentPending {
			return false
		}
	}
	return true
}
