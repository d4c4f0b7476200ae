package handlers

import (
	"net/http"
	"strings"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/services"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/store"
)

// PaymentHandler handles the return from the payment gateway and the
// final status view
type PaymentHandler struct {
	verifier services.PaymentVerifierAPI
	handoff  *store.HandoffStore
	log      logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(verifier services.PaymentVerifierAPI, handoff *store.HandoffStore, log logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		verifier: verifier,
		handoff:  handoff,
		log:      log,
	}
}

// PaymentReturn receives control back from the gateway. The merchant order
// id moves from the querystring into the handoff slot, and the user is
// redirected to the parameterless result view so a bookmarked or re-shared
// URL can never replay a verification.
func (h *PaymentHandler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("merchantOrderId")
	// Some gateways duplicate the parameter into a comma-joined value;
	// only the first token is significant.
	if i := strings.Index(orderID, ","); i >= 0 {
		orderID = orderID[:i]
	}
	orderID = strings.TrimSpace(orderID)

	if orderID == "" {
		h.log.Warn("payment return without merchant order id")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.handoff.Put(w, r, orderID); err != nil {
		h.log.Error("failed to store merchant order id", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.log.Info("payment return received", "merchant_order_id", orderID)
	http.Redirect(w, r, "/payment/result", http.StatusSeeOther)
}

// PaymentResult consumes the handoff slot and makes exactly one
// verification call. Arriving without a stored order id routes home
// without touching the verify endpoint.
func (h *PaymentHandler) PaymentResult(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.handoff.Consume(w, r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	verification, err := h.verifier.VerifyPayment(r.Context(), orderID)
	if err != nil {
		h.log.Error("payment verification failed", "merchant_order_id", orderID, "error", err)
		writeJSON(w, http.StatusBadGateway, response{
			Success: false,
			Message: "We could not verify your payment. Please contact support with your order id.",
			Data:    map[string]string{"merchant_order_id": orderID, "home": "/"},
		})
		return
	}

	h.log.Info("payment verified",
		"merchant_order_id", orderID,
		"status", verification.PaymentStatus,
		"participants", verification.ParticipantCount)
	writeData(w, verification)
}
