package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jamjam-delivery/internal/lifecycle"
)

type sessionManager interface {
	Create() (string, *lifecycle.Flow)
	Get(id string) (*lifecycle.Flow, error)
	Delete(id string) error
}

// SessionHandler serves the order session API.
type SessionHandler struct{ mgr sessionManager }

// NewSessionHandler wires a session manager into HTTP handlers.
func NewSessionHandler(mgr sessionManager) *SessionHandler { return &SessionHandler{mgr: mgr} }

// flow resolves the session from the URL, or replies 404.
func (h *SessionHandler) flow(w http.ResponseWriter, r *http.Request) (string, *lifecycle.Flow, bool) {
	id := chi.URLParam(r, "id")
	f, err := h.mgr.Get(id)
	if err != nil {
		writeFlowError(w, r, err)
		return "", nil, false
	}
	return id, f, true
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, status int, id string, f *lifecycle.Flow) {
	writeJSON(w, r, status, toSnapshotResponse(id, f.Snapshot()))
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, f := h.mgr.Create()
	w.Header().Set("Location", "/sessions/"+id)
	h.respond(w, r, http.StatusCreated, id, f)
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// Delete handles DELETE /sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.Delete(chi.URLParam(r, "id")); err != nil {
		writeFlowError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitBooking handles POST /sessions/{id}/booking.
func (h *SessionHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req bookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.SubmitBooking(req.Pickup, req.Dropoff, req.Weight, req.PackageType); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// SubmitContact handles POST /sessions/{id}/contact.
func (h *SessionHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.SubmitContactDetails(req.SenderPhone, req.RecipientPhone, req.BackupPhone); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// ConfirmRider handles POST /sessions/{id}/rider/confirm.
func (h *SessionHandler) ConfirmRider(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.ConfirmRider(); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// CancelBroadcast handles POST /sessions/{id}/broadcast/cancel.
func (h *SessionHandler) CancelBroadcast(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.CancelBroadcast(); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// ElectInsurance handles POST /sessions/{id}/insurance.
func (h *SessionHandler) ElectInsurance(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req insuranceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.ElectInsurance(req.DeclaredValue, req.Cost); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// SelectOption handles POST /sessions/{id}/option.
func (h *SessionHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req optionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.SelectOption(req.Option); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// ContinueOptions handles POST /sessions/{id}/options/continue.
func (h *SessionHandler) ContinueOptions(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.ContinueToWhoPays(); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// ChoosePayer handles POST /sessions/{id}/payer.
func (h *SessionHandler) ChoosePayer(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req payerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.ChoosePayer(req.Payer); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// ContinuePayer handles POST /sessions/{id}/payer/continue.
func (h *SessionHandler) ContinuePayer(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.ContinueFromWhoPays(); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// StartCollectCash handles POST /sessions/{id}/collect-cash.
func (h *SessionHandler) StartCollectCash(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.StartCollectCash(); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// SubmitCollectCash handles POST /sessions/{id}/collect-cash/submit.
func (h *SessionHandler) SubmitCollectCash(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req collectCashRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.SubmitCollectCash(req.Amount, req.PayoutDetails); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// SelectPaymentMethod handles POST /sessions/{id}/payment/method.
func (h *SessionHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req paymentMethodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.SelectPaymentMethod(req.Method); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// ConfirmPayment handles POST /sessions/{id}/payment/confirm.
func (h *SessionHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := f.ConfirmPayment(); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// PaymentResult handles POST /sessions/{id}/payment/result, the hosted
// checkout callback.
func (h *SessionHandler) PaymentResult(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req paymentResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.OnPaymentResult(req.Success); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// SendChat handles POST /sessions/{id}/chat.
func (h *SessionHandler) SendChat(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := f.SendChatMessage(req.Text); err != nil {
		writeFlowError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, id, f)
}

// Reset handles POST /sessions/{id}/reset.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, f, ok := h.flow(w, r)
	if !ok {
		return
	}
	f.Reset()
	h.respond(w, r, http.StatusOK, id, f)
}
