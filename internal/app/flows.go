package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"jamjam-delivery/internal/catalog"
	"jamjam-delivery/internal/config"
	"jamjam-delivery/internal/gateway/notify"
	"jamjam-delivery/internal/lifecycle"
	"jamjam-delivery/internal/logx"
	"jamjam-delivery/internal/pricing"
	"jamjam-delivery/internal/riders"
	"jamjam-delivery/internal/route"
	"jamjam-delivery/internal/sched"
	"jamjam-delivery/internal/session"
	"jamjam-delivery/internal/transport/kafka"
)

func flowTimings(t config.Timing) lifecycle.Timings {
	return lifecycle.Timings{
		PaymentProcessing: t.PaymentProcessing,
		AssignDelay:       t.AssignDelay,
		PickupDelay:       t.PickupDelay,
		TransitDelay:      t.TransitDelay,
		MultiTransitDelay: t.MultiTransitDelay,
		DeliverDelay:      t.DeliverDelay,
		SegmentCadence:    t.SegmentCadence,
		ChatReplyDelay:    t.ChatReplyDelay,
	}
}

func broadcastTimings(t config.Timing) riders.Timings {
	return riders.Timings{
		OfferStagger:  t.OfferStagger,
		AcceptDelay:   t.AcceptDelay,
		FinalizeDelay: t.FinalizeDelay,
	}
}

type flowFactoryIn struct {
	dig.In

	Cfg      *config.Config
	Logger   logx.Logger
	Producer *kafka.Producer
	Notifier *notify.WebhookGateway

	Delivered prometheus.Counter `name:"orders_delivered_total"`
	Cancelled prometheus.Counter `name:"broadcasts_cancelled_total"`
	Payments  prometheus.Counter `name:"payments_processed_total"`
}

// newFlowFactory builds per-session flows over real timers. The sink fans
// transition events out to Kafka, the completion webhook and the counters;
// anything blocking runs off the flow goroutine because sinks are called
// under the flow lock.
func newFlowFactory(in flowFactoryIn) session.FlowFactory {
	return func(id string) *lifecycle.Flow {
		logger := in.Logger.With(logx.String("session_id", id))
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		var f *lifecycle.Flow
		sink := func(ev lifecycle.Event) {
			switch ev.Type {
			case lifecycle.EventDelivered:
				in.Delivered.Inc()
				go notifyDelivered(in.Notifier, logger, id, f, ev)
			case lifecycle.EventBroadcastCancelled:
				in.Cancelled.Inc()
			case lifecycle.EventPaymentProcessed:
				in.Payments.Inc()
			}
			if in.Producer != nil {
				go publishTransition(in.Producer, logger, id, ev)
			}
		}

		f = lifecycle.NewFlow(
			sched.NewTimers(),
			route.NewSegmenter(rng),
			nil,
			catalog.Riders(),
			flowTimings(in.Cfg.Timing),
			broadcastTimings(in.Cfg.Timing),
			logger,
			sink,
		)
		return f
	}
}

func publishTransition(p *kafka.Producer, logger logx.Logger, id string, ev lifecycle.Event) {
	if err := p.PublishTransition(id, ev); err != nil {
		logger.Warn("transition publish failed",
			logx.String("type", string(ev.Type)),
			logx.Any("err", err),
		)
	}
}

// notifyDelivered snapshots the finished order once the flow lock is free
// and posts the completion webhook.
func notifyDelivered(n *notify.WebhookGateway, logger logx.Logger, id string, f *lifecycle.Flow, ev lifecycle.Event) {
	if n == nil {
		return
	}
	snap := f.Snapshot()
	err := n.NotifyDelivered(context.Background(), notify.CompletionEvent{
		SessionID:   id,
		Pickup:      snap.Order.Pickup,
		Dropoff:     snap.Order.Dropoff,
		RiderCount:  snap.Order.RequiredRiders,
		TotalPrice:  pricing.Display(snap.Order.TotalPrice),
		DeliveredAt: ev.At,
	})
	if err != nil {
		logger.Error("delivery notification failed", logx.Any("err", err))
	}
}
