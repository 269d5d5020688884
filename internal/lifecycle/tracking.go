package lifecycle

import (
	"jamjam-delivery/internal/domain"
	"jamjam-delivery/internal/logx"
)

// enterTracking moves the flow into the tracking stage and starts the
// status auto-progression. Lock held.
func (f *Flow) enterTracking() {
	f.order.Stage = domain.StageTracking
	f.emit(EventStageChanged)
	f.setStatus(domain.StatusSearching)

	if f.order.MultiRider {
		f.after(f.timings.AssignDelay, func() {
			f.setStatus(domain.StatusAssigned)
			f.setStatus(domain.StatusPickedUp)
			f.order.CurrentSegment = 1
			f.after(f.timings.MultiTransitDelay, func() {
				f.setStatus(domain.StatusInTransit)
				f.after(f.timings.SegmentCadence, f.advanceSegment)
			})
		})
		return
	}

	f.after(f.timings.AssignDelay, func() {
		f.setStatus(domain.StatusAssigned)
		if f.selectedRider == nil {
			r := f.pool[0]
			f.selectedRider = &r
		}
		f.after(f.timings.PickupDelay, func() {
			f.setStatus(domain.StatusPickedUp)
			f.after(f.timings.TransitDelay, func() {
				f.setStatus(domain.StatusInTransit)
				f.after(f.timings.DeliverDelay, func() {
					f.deliver()
				})
			})
		})
	})
}

// advanceSegment moves the multi-rider frontier one segment forward every
// cadence tick. When the frontier passes the last segment the order is
// delivered and the current segment index stays capped at the rider count.
func (f *Flow) advanceSegment() {
	next := f.order.CurrentSegment + 1

	f.markSegments(next)

	if next > f.order.RequiredRiders {
		f.deliver()
		return
	}
	f.order.CurrentSegment = next
	f.after(f.timings.SegmentCadence, f.advanceSegment)
}

// markSegments sets every segment before the frontier to completed and the
// frontier segment to in_progress, in both the route and assignment views.
func (f *Flow) markSegments(frontier int) {
	for i := range f.segments {
		switch {
		case f.segments[i].Number < frontier:
			f.segments[i].Status = domain.SegmentCompleted
		case f.segments[i].Number == frontier:
			f.segments[i].Status = domain.SegmentInProgress
		}
	}
	for i := range f.assignments {
		switch {
		case f.assignments[i].Segment.Number < frontier:
			f.assignments[i].Segment.Status = domain.SegmentCompleted
		case f.assignments[i].Segment.Number == frontier:
			f.assignments[i].Segment.Status = domain.SegmentInProgress
		}
	}
}

// deliver is the terminal transition for the order instance. Lock held.
func (f *Flow) deliver() {
	f.setStatus(domain.StatusDelivered)
	f.order.Stage = domain.StageDelivered
	f.emit(EventStageChanged)
	f.emit(EventDelivered)

	f.logger.Info("order delivered",
		logx.String("event", "order_delivered"),
		logx.Bool("multi_rider", f.order.MultiRider),
		logx.Int("segments", f.order.RequiredRiders),
	)
}

// setStatus applies a forward status transition; anything that would
// regress the axis is dropped. Lock held.
func (f *Flow) setStatus(next domain.DeliveryStatus) {
	if f.order.Status == next {
		return
	}
	if !f.order.Status.CanAdvanceTo(next) {
		f.logger.Warn("status regression dropped",
			logx.String("from", string(f.order.Status)),
			logx.String("to", string(next)),
		)
		return
	}
	f.order.Status = next
	f.emit(EventStatusChanged)
}
