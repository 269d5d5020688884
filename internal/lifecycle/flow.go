// Package lifecycle implements the order state machine: stage sequencing
// from booking to delivered, the parallel delivery-status axis, and the
// timer-driven progression that simulates rider movement. All simulated
// delays go through the injected scheduler, and every scheduled callback is
// guarded by an order generation: a timer that fires after a reset or a
// broadcast cancel is a silent no-op.
package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"jamjam-delivery/internal/apperr"
	"jamjam-delivery/internal/domain"
	"jamjam-delivery/internal/logx"
	"jamjam-delivery/internal/pricing"
	"jamjam-delivery/internal/riders"
	"jamjam-delivery/internal/route"
	"jamjam-delivery/internal/sched"
)

// Timings holds every simulated delay of the tracking flow.
type Timings struct {
	PaymentProcessing time.Duration
	AssignDelay       time.Duration
	PickupDelay       time.Duration
	TransitDelay      time.Duration
	MultiTransitDelay time.Duration
	DeliverDelay      time.Duration
	SegmentCadence    time.Duration
	ChatReplyDelay    time.Duration
}

// DefaultTimings returns the production delays.
func DefaultTimings() Timings {
	return Timings{
		PaymentProcessing: 2 * time.Second,
		AssignDelay:       2 * time.Second,
		PickupDelay:       5 * time.Second,
		TransitDelay:      5 * time.Second,
		MultiTransitDelay: 3 * time.Second,
		DeliverDelay:      8 * time.Second,
		SegmentCadence:    8 * time.Second,
		ChatReplyDelay:    2 * time.Second,
	}
}

// riderCounter derives the rider requirement for a search.
type riderCounter interface {
	RequiredRiders(pickup, dropoff string, weight domain.WeightClass) int
}

// Flow drives a single order session through the booking flow.
type Flow struct {
	scheduler    sched.Scheduler
	segmenter    *route.Segmenter
	counter      riderCounter
	pool         []domain.Rider
	timings      Timings
	broadcastCfg riders.Timings
	logger       logx.Logger
	sink         Sink
	now          func() time.Time

	mu            sync.Mutex
	gen           uint64
	order         domain.Order
	segments      []domain.RouteSegment
	assignments   []domain.RiderAssignment
	selectedRider *domain.Rider
	broadcast     *riders.Broadcast
	chat          []ChatMessage
	chatSeq       int
	handles       []sched.Handle
}

// NewFlow creates a Flow over the given candidate pool. Zero timings fall
// back to the production defaults; a nil counter gets a fresh one.
func NewFlow(
	scheduler sched.Scheduler,
	segmenter *route.Segmenter,
	counter riderCounter,
	pool []domain.Rider,
	timings Timings,
	broadcastCfg riders.Timings,
	logger logx.Logger,
	sink Sink,
) *Flow {
	if counter == nil {
		counter = riders.NewSearchCounter()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if timings == (Timings{}) {
		timings = DefaultTimings()
	}
	if broadcastCfg == (riders.Timings{}) {
		broadcastCfg = riders.DefaultTimings()
	}
	return &Flow{
		scheduler:    scheduler,
		segmenter:    segmenter,
		counter:      counter,
		pool:         pool,
		timings:      timings,
		broadcastCfg: broadcastCfg,
		logger:       logger,
		sink:         sink,
		now:          func() time.Time { return time.Now().UTC() },
		order:        domain.NewOrder(),
		chat:         seedChat(),
	}
}

// after schedules fn through the scheduler with the generation guard.
// Must be called with the flow lock held; fn runs with the lock held.
func (f *Flow) after(d time.Duration, fn func()) {
	gen := f.gen
	h := f.scheduler.After(d, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen != gen {
			f.logger.Debug("stale timer ignored",
				logx.String("event", "stale_timer"),
				logx.String("stage", string(f.order.Stage)),
			)
			return
		}
		fn()
	})
	f.handles = append(f.handles, h)
}

// emit pushes an event to the sink. Lock held; sinks must not reenter.
func (f *Flow) emit(t EventType) {
	if f.sink == nil {
		return
	}
	f.sink(Event{Type: t, Stage: f.order.Stage, Status: f.order.Status, At: f.now()})
}

func (f *Flow) setStage(next domain.Stage) {
	f.order.Stage = next
	f.emit(EventStageChanged)
}

// SubmitBooking records the pickup/dropoff pair and advances to contact
// details. Both endpoints are required.
func (f *Flow) SubmitBooking(pickup, dropoff string, weight domain.WeightClass, pkg domain.PackageType) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageBooking {
		return fmt.Errorf("%w: booking not open in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	if pickup == "" || dropoff == "" {
		return fmt.Errorf("%w: pickup and dropoff required", apperr.ErrValidation)
	}
	if !weight.Valid() {
		return fmt.Errorf("%w: unknown weight class %q", apperr.ErrValidation, weight)
	}
	if !pkg.Valid() {
		return fmt.Errorf("%w: unknown package type %q", apperr.ErrValidation, pkg)
	}

	f.order.Pickup = pickup
	f.order.Dropoff = dropoff
	f.order.Weight = weight
	f.order.PackageType = pkg
	f.setStage(domain.StageContactDetails)
	return nil
}

// SubmitContactDetails records the contact numbers, derives the rider
// requirement and the route, and enters rider matching. Multi-rider orders
// start the acceptance broadcast immediately.
func (f *Flow) SubmitContactDetails(sender, recipient, backup string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageContactDetails {
		return fmt.Errorf("%w: contact details not open in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	if !domain.ValidatePhone(sender) || !domain.ValidatePhone(recipient) {
		return fmt.Errorf("%w: sender and recipient phone numbers required", apperr.ErrValidation)
	}
	if backup != "" && !domain.ValidatePhone(backup) {
		return fmt.Errorf("%w: malformed backup phone number", apperr.ErrValidation)
	}

	count := f.counter.RequiredRiders(f.order.Pickup, f.order.Dropoff, f.order.Weight)
	segments, err := f.segmenter.Compute(f.order.Pickup, f.order.Dropoff, count)
	if err != nil {
		return err
	}

	f.order.SenderPhone = sender
	f.order.RecipientPhone = recipient
	f.order.RecipientBackupPhone = backup
	f.order.RequiredRiders = count
	f.order.MultiRider = count > 1
	f.segments = segments
	f.setStage(domain.StageRiderMatching)

	f.logger.Info("rider matching started",
		logx.String("event", "rider_matching_started"),
		logx.Int("required_riders", count),
		logx.Bool("multi_rider", f.order.MultiRider),
	)

	if !f.order.MultiRider {
		r := f.pool[0]
		f.selectedRider = &r
		return nil
	}

	gen := f.gen
	f.broadcast = riders.NewBroadcast(f.scheduler, f.broadcastCfg, f.logger)
	return f.broadcast.Start(f.pool, count, segments, func(assignments []domain.RiderAssignment) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen != gen {
			return
		}
		f.ridersAccepted(assignments)
	})
}

// ridersAccepted finalizes the broadcast result: segment 1 goes in_progress,
// the base price becomes the sum of per-segment rates, and the flow moves to
// delivery options. Lock held.
func (f *Flow) ridersAccepted(assignments []domain.RiderAssignment) {
	for i := range assignments {
		if assignments[i].Segment.Number == 1 {
			assignments[i].Segment.Status = domain.SegmentInProgress
		} else {
			assignments[i].Segment.Status = domain.SegmentPending
		}
	}
	for i := range f.segments {
		if f.segments[i].Number == 1 {
			f.segments[i].Status = domain.SegmentInProgress
		}
	}
	f.assignments = assignments
	f.order.BasePrice = pricing.BaseFromAssignments(assignments)
	f.setStage(f.optionsStage())

	f.logger.Info("riders assigned",
		logx.String("event", "riders_assigned"),
		logx.Int("riders", len(assignments)),
		logx.String("base_price", pricing.Display(f.order.BasePrice)),
	)
}

// ConfirmRider confirms the presented rider on a single-rider order.
func (f *Flow) ConfirmRider() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageRiderMatching || f.order.MultiRider {
		return fmt.Errorf("%w: no rider confirmation pending", apperr.ErrConflict)
	}
	f.order.BasePrice = f.selectedRider.PricePerSegment
	f.setStage(f.optionsStage())
	return nil
}

// CancelBroadcast aborts a multi-rider broadcast in progress. Every pending
// timer is invalidated; the flow returns to booking with rider state cleared.
func (f *Flow) CancelBroadcast() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageRiderMatching || !f.order.MultiRider {
		return fmt.Errorf("%w: no broadcast in progress", apperr.ErrConflict)
	}

	f.broadcast.Cancel()
	f.broadcast = nil
	f.bumpGeneration()

	f.order.MultiRider = false
	f.order.RequiredRiders = 1
	f.order.CurrentSegment = 1
	f.order.BasePrice = decimal.Zero
	f.order.Option = ""
	f.segments = nil
	f.assignments = nil
	f.order.Stage = domain.StageBooking
	f.emit(EventBroadcastCancelled)
	return nil
}

// optionsStage picks the cosmetic insurance-aware variant when insurance
// was elected; both variants transition identically.
func (f *Flow) optionsStage() domain.Stage {
	if f.order.HasInsurance {
		return domain.StageInsuranceOptions
	}
	return domain.StageDeliveryOptions
}

// ElectInsurance attaches insurance to the order before an option is chosen.
func (f *Flow) ElectInsurance(declaredValue, cost decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageDeliveryOptions {
		return fmt.Errorf("%w: insurance not electable in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	if !declaredValue.IsPositive() {
		return fmt.Errorf("%w: declared item value must be positive", apperr.ErrValidation)
	}
	if cost.IsNegative() {
		return fmt.Errorf("%w: negative insurance cost", apperr.ErrValidation)
	}

	f.order.HasInsurance = true
	f.order.DeclaredValue = declaredValue
	f.order.InsuranceCost = cost
	f.setStage(domain.StageInsuranceOptions)
	return nil
}

// SelectOption picks the delivery speed tier and computes the total price.
func (f *Flow) SelectOption(option domain.DeliveryOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageDeliveryOptions && f.order.Stage != domain.StageInsuranceOptions {
		return fmt.Errorf("%w: delivery options not open in stage %s", apperr.ErrConflict, f.order.Stage)
	}

	insurance := decimal.Zero
	if f.order.HasInsurance {
		insurance = f.order.InsuranceCost
	}
	total, err := pricing.Total(f.order.BasePrice, option, insurance)
	if err != nil {
		return err
	}
	f.order.Option = option
	f.order.TotalPrice = total
	return nil
}

// ContinueToWhoPays advances past option selection.
func (f *Flow) ContinueToWhoPays() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageDeliveryOptions && f.order.Stage != domain.StageInsuranceOptions {
		return fmt.Errorf("%w: not at delivery options", apperr.ErrConflict)
	}
	if f.order.Option == "" {
		return fmt.Errorf("%w: no delivery option chosen", apperr.ErrValidation)
	}
	f.setStage(domain.StageWhoPays)
	return nil
}

// ChoosePayer records who pays for the delivery.
func (f *Flow) ChoosePayer(p domain.Payer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageWhoPays {
		return fmt.Errorf("%w: payer not selectable in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	if !p.Valid() {
		return fmt.Errorf("%w: unknown payer %q", apperr.ErrValidation, p)
	}
	f.order.Payer = p
	return nil
}

// StartCollectCash enters the collect-cash-on-behalf sub-flow.
func (f *Flow) StartCollectCash() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageWhoPays {
		return fmt.Errorf("%w: collect cash not available in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	f.order.CollectCash = true
	f.setStage(domain.StageCollectCash)
	return nil
}

// SubmitCollectCash records the amount and payout details, then returns to
// who-pays with all prior selections intact.
func (f *Flow) SubmitCollectCash(amount decimal.Decimal, payoutDetails string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageCollectCash {
		return fmt.Errorf("%w: not in collect cash", apperr.ErrConflict)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: collect amount must be positive", apperr.ErrValidation)
	}
	f.order.CollectCashAmount = amount
	f.order.CollectCashDetails = payoutDetails
	f.setStage(domain.StageWhoPays)
	return nil
}

// ContinueFromWhoPays branches: a paying recipient skips the payment stage
// and tracking starts immediately; a paying sender proceeds to payment.
func (f *Flow) ContinueFromWhoPays() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StageWhoPays {
		return fmt.Errorf("%w: not at who-pays", apperr.ErrConflict)
	}
	if f.order.Payer == "" {
		return fmt.Errorf("%w: no payer chosen", apperr.ErrValidation)
	}
	if f.order.Payer == domain.PayerRecipient {
		f.enterTracking()
		return nil
	}
	f.setStage(domain.StagePayment)
	return nil
}

// SelectPaymentMethod records the payment instrument.
func (f *Flow) SelectPaymentMethod(m domain.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StagePayment {
		return fmt.Errorf("%w: payment not open in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	if !m.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", apperr.ErrValidation, m)
	}
	f.order.PaymentMethod = m
	return nil
}

// ConfirmPayment starts payment processing. Cash and mobile money resolve
// themselves after the simulated processing delay; card payments wait for
// the hosted checkout to report through OnPaymentResult.
func (f *Flow) ConfirmPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StagePayment {
		return fmt.Errorf("%w: payment not open in stage %s", apperr.ErrConflict, f.order.Stage)
	}
	if f.order.PaymentMethod == "" {
		return fmt.Errorf("%w: no payment method chosen", apperr.ErrValidation)
	}
	if f.order.ProcessingPayment {
		return fmt.Errorf("%w: payment already processing", apperr.ErrConflict)
	}

	f.order.ProcessingPayment = true
	if f.order.PaymentMethod == domain.PayCard {
		return nil
	}
	f.after(f.timings.PaymentProcessing, func() {
		f.paymentSucceeded()
	})
	return nil
}

// OnPaymentResult is the callback contract for the hosted checkout
// collaborator: success moves to tracking, failure re-opens the payment stage.
func (f *Flow) OnPaymentResult(success bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.order.Stage != domain.StagePayment || !f.order.ProcessingPayment {
		return fmt.Errorf("%w: no payment in flight", apperr.ErrConflict)
	}
	if !success {
		f.order.ProcessingPayment = false
		return nil
	}
	f.paymentSucceeded()
	return nil
}

// paymentSucceeded ends processing and enters tracking. Lock held.
func (f *Flow) paymentSucceeded() {
	f.order.ProcessingPayment = false
	f.emit(EventPaymentProcessed)
	f.enterTracking()
}

// Reset discards the order and restores the exact initial state, including
// the chat seed. Every pending timer of the old generation becomes stale.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.broadcast != nil {
		f.broadcast.Cancel()
		f.broadcast = nil
	}
	f.bumpGeneration()

	f.order = domain.NewOrder()
	f.segments = nil
	f.assignments = nil
	f.selectedRider = nil
	f.chat = seedChat()
	f.chatSeq = 0
	f.emit(EventReset)

	f.logger.Info("order reset", logx.String("event", "order_reset"))
}

// bumpGeneration invalidates every outstanding timer. Lock held.
func (f *Flow) bumpGeneration() {
	f.gen++
	for _, h := range f.handles {
		h.Stop()
	}
	f.handles = nil
}

// Snapshot is the read model the view layer consumes.
type Snapshot struct {
	Order         domain.Order
	Segments      []domain.RouteSegment
	Assignments   []domain.RiderAssignment
	SelectedRider *domain.Rider
	Chat          []ChatMessage
}

// Snapshot returns a consistent copy of the current flow state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{Order: f.order}
	snap.Segments = make([]domain.RouteSegment, len(f.segments))
	copy(snap.Segments, f.segments)
	snap.Assignments = make([]domain.RiderAssignment, len(f.assignments))
	copy(snap.Assignments, f.assignments)
	if f.selectedRider != nil {
		r := *f.selectedRider
		snap.SelectedRider = &r
	}
	snap.Chat = make([]ChatMessage, len(f.chat))
	copy(snap.Chat, f.chat)
	return snap
}
