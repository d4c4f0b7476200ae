package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/services"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/store"
)

// CheckoutHandler drives the participant form flow: expansion, gated slot
// editing, and the final two-phase submission.
type CheckoutHandler struct {
	catalog      services.CatalogServiceInterface
	registration services.RegistrationServiceInterface
	checkouts    store.CheckoutStore
	store        sessions.Store
	log          logger.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(
	catalog services.CatalogServiceInterface,
	registration services.RegistrationServiceInterface,
	checkouts store.CheckoutStore,
	sessionStore sessions.Store,
	log logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		catalog:      catalog,
		registration: registration,
		checkouts:    checkouts,
		store:        sessionStore,
		log:          log,
	}
}

// slotInput is the participant form payload for one slot
type slotInput struct {
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	ConfirmEmail       string `json:"confirm_email"`
	Phone              string `json:"phone"`
	DateOfBirth        string `json:"date_of_birth"`
	Gender             string `json:"gender"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Pincode            string `json:"pincode"`
	State              string `json:"state"`
	TShirtSize         string `json:"tshirt_size"`
	BloodGroup         string `json:"blood_group"`
	RunningClub        string `json:"running_club"`
	DisclaimerAccepted string `json:"disclaimer_accepted"`
}

func (in *slotInput) apply(slot *models.ParticipantSlot) {
	slot.FullName = in.FullName
	slot.Email = in.Email
	slot.ConfirmEmail = in.ConfirmEmail
	slot.Phone = in.Phone
	slot.DateOfBirth = in.DateOfBirth
	slot.Gender = models.ParseGender(in.Gender)
	slot.Address = in.Address
	slot.City = in.City
	slot.Pincode = in.Pincode
	slot.State = in.State
	slot.TShirtSize = in.TShirtSize
	slot.BloodGroup = in.BloodGroup
	slot.RunningClub = in.RunningClub
	slot.DisclaimerAccepted = in.DisclaimerAccepted
}

// StartCheckout finalizes the cart into a fresh checkout session. Any
// previous session is replaced wholesale; slot contents do not survive a
// re-expansion.
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := buildCart(h.catalog.Catalog(r.Context()), getQuantitiesFromSession(session))
	selection := cart.Selection()
	if len(selection) == 0 {
		writeError(w, http.StatusBadRequest, models.ErrCartEmpty.Error())
		return
	}

	cs := models.NewCheckoutSession(uuid.NewString(), models.ExpandSelection(selection))
	if err := h.checkouts.Save(r.Context(), cs); err != nil {
		h.log.Error("failed to save checkout session", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start checkout")
		return
	}

	session.Values[checkoutSessionKey] = cs.ID
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.log.Info("checkout started", "session_id", cs.ID, "slots", len(cs.Slots), "cart_total", cart.Total())
	writeData(w, cs)
}

// GetCheckout returns the current checkout session state
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	cs, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	writeData(w, cs)
}

// SaveSlot stores submitted fields for the currently open slot and tries
// to advance. Validation failures keep the slot open and return the
// ordered error list; typing is never blocked, only advancement.
func (h *CheckoutHandler) SaveSlot(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid slot index")
		return
	}

	cs, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	if cs.State != models.CheckoutEditing {
		writeError(w, http.StatusConflict, "Checkout is no longer editable")
		return
	}
	if index != cs.Open {
		writeError(w, http.StatusConflict, "Slot is not open for editing")
		return
	}

	var in slotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrInvalidInput.Error())
		return
	}
	in.apply(&cs.Slots[index])

	fieldErrs, err := cs.Advance()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if saveErr := h.checkouts.Save(r.Context(), cs); saveErr != nil {
		h.log.Error("failed to save checkout session", "session_id", cs.ID, "error", saveErr)
		writeError(w, http.StatusInternalServerError, "Failed to save checkout")
		return
	}

	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Success: false,
			Message: "Please fix the highlighted fields",
			Errors:  fieldErrs,
			Data:    cs,
		})
		return
	}
	writeData(w, cs)
}

// OpenSlot moves the open pointer back to an earlier, already-unlocked
// slot for review
func (h *CheckoutHandler) OpenSlot(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid slot index")
		return
	}

	cs, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if err := cs.Reopen(index); err != nil {
		switch {
		case errors.Is(err, models.ErrSlotIndexOutOfRange):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrSlotLocked), errors.Is(err, models.ErrNotEditing):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if err := h.checkouts.Save(r.Context(), cs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save checkout")
		return
	}
	writeData(w, cs)
}

// Submit re-validates every slot and runs the two-phase registration. The
// first failing slot aborts before any network call. On success the cart
// is cleared and the browser is sent to the payment gateway.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	cs, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if first := cs.ValidateAll(); first != -1 {
		cs.State = models.CheckoutEditing
		cs.Open = first
		if err := h.checkouts.Save(r.Context(), cs); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save checkout")
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Success: false,
			Message: "Some participants have missing or invalid details",
			Errors:  cs.Errors,
			Data:    cs,
		})
		return
	}

	cs.State = models.CheckoutSubmitting
	result, err := h.registration.Submit(r.Context(), cs)
	if err != nil {
		// Slots stay intact so the user can retry manually.
		cs.State = models.CheckoutEditing
		if saveErr := h.checkouts.Save(r.Context(), cs); saveErr != nil {
			h.log.Error("failed to save checkout session", "session_id", cs.ID, "error", saveErr)
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	cs.State = models.CheckoutDone
	if err := h.checkouts.Save(r.Context(), cs); err != nil {
		h.log.Error("failed to save checkout session", "session_id", cs.ID, "error", err)
	}

	// The cart is abandoned once registration succeeds; only the merchant
	// order id survives the gateway round-trip.
	session, err := h.store.Get(r, sessionName)
	if err == nil {
		saveQuantitiesToSession(session, map[int]int{})
		delete(session.Values, checkoutSessionKey)
		if err := session.Save(r, w); err != nil {
			h.log.Error("failed to clear cart after submission", "error", err)
		}
	}

	h.log.Info("checkout submitted",
		"session_id", cs.ID,
		"merchant_order_id", result.MerchantOrderID,
		"participants", len(result.ParticipantIDs))

	handleRedirect(w, r, result.PaymentURL, http.StatusSeeOther)
}

// loadSession resolves the session cookie to a live checkout session,
// writing the error response itself when there is none
func (h *CheckoutHandler) loadSession(w http.ResponseWriter, r *http.Request) (*models.CheckoutSession, bool) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return nil, false
	}

	id, ok := session.Values[checkoutSessionKey].(string)
	if !ok || id == "" {
		writeError(w, http.StatusNotFound, models.ErrCheckoutNotFound.Error())
		return nil, false
	}

	cs, err := h.checkouts.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, models.ErrCheckoutExpired.Error())
		return nil, false
	}
	if err != nil {
		h.log.Error("failed to load checkout session", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load checkout")
		return nil, false
	}
	return cs, true
}
