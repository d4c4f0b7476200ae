package store

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	handoffSessionName = "session"
	handoffKey         = "pending_merchant_order_id"
)

// HandoffStore carries the merchant order identifier across the redirect
// boundary back from the payment gateway. It is a single-slot, write-once
// read-once channel: Consume clears the slot in the same request, so a
// refresh of the result page cannot replay the verification.
type HandoffStore struct {
	store sessions.Store
}

// NewHandoffStore creates a handoff store over the shared session store
func NewHandoffStore(store sessions.Store) *HandoffStore {
	return &HandoffStore{store: store}
}

// Put writes the order identifier into the session slot
func (h *HandoffStore) Put(w http.ResponseWriter, r *http.Request, orderID string) error {
	session, err := h.store.Get(r, handoffSessionName)
	if err != nil {
		return err
	}
	session.Values[handoffKey] = orderID
	return session.Save(r, w)
}

// Consume reads the order identifier and clears the slot in one step.
// The second return value is false when the slot is empty.
func (h *HandoffStore) Consume(w http.ResponseWriter, r *http.Request) (string, bool) {
	session, err := h.store.Get(r, handoffSessionName)
	if err != nil {
		return "", false
	}
	orderID, ok := session.Values[handoffKey].(string)
	if !ok || orderID == "" {
		return "", false
	}
	delete(session.Values, handoffKey)
	if err := session.Save(r, w); err != nil {
		return "", false
	}
	return orderID, true
}
