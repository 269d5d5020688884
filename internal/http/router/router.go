// Package router wires the session API onto a chi mux.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jamjam-delivery/internal/http/handlers"
	mw "jamjam-delivery/internal/http/middleware"
	"jamjam-delivery/internal/http/middleware/ratelimit"
	"jamjam-delivery/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, sh *handlers.SessionHandler, rl *ratelimit.Middleware, logger logx.Logger) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(mw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sh.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sh.Get)
			r.Delete("/", sh.Delete)

			r.Post("/booking", sh.SubmitBooking)
			r.Post("/contact", sh.SubmitContact)
			r.Post("/rider/confirm", sh.ConfirmRider)
			r.Post("/broadcast/cancel", sh.CancelBroadcast)
			r.Post("/insurance", sh.ElectInsurance)
			r.Post("/option", sh.SelectOption)
			r.Post("/options/continue", sh.ContinueOptions)
			r.Post("/payer", sh.ChoosePayer)
			r.Post("/payer/continue", sh.ContinuePayer)
			r.Post("/collect-cash", sh.StartCollectCash)
			r.Post("/collect-cash/submit", sh.SubmitCollectCash)
			r.Post("/payment/method", sh.SelectPaymentMethod)
			r.Post("/payment/confirm", sh.ConfirmPayment)
			r.Post("/payment/result", sh.PaymentResult)
			r.Post("/chat", sh.SendChat)
			r.Post("/reset", sh.Reset)
		})
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
