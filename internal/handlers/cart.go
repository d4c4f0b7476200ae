package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/services"
)

// CartHandler handles ticket browsing and cart quantity changes
type CartHandler struct {
	catalog services.CatalogServiceInterface
	store   sessions.Store
	log     logger.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog services.CatalogServiceInterface, store sessions.Store, log logger.Logger) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		store:   store,
		log:     log,
	}
}

// ListTickets returns the race catalog merged with the session's current
// quantities
func (h *CartHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := buildCart(h.catalog.Catalog(r.Context()), getQuantitiesFromSession(session))
	writeData(w, map[string]any{
		"tickets": cart.Tickets,
		"total":   cart.Total(),
	})
}

// UpdateCartItem moves one ticket's quantity by exactly one step. The op
// form value is "increment" or "decrement"; decrementing an empty line is
// a no-op.
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	ticketID, err := strconv.Atoi(r.FormValue("ticket_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}
	op := r.FormValue("op")
	if op != "increment" && op != "decrement" {
		writeError(w, http.StatusBadRequest, models.ErrInvalidInput.Error())
		return
	}

	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := buildCart(h.catalog.Catalog(r.Context()), getQuantitiesFromSession(session))

	var found bool
	if op == "increment" {
		found = cart.Increment(ticketID)
	} else {
		found = cart.Decrement(ticketID)
	}
	if !found {
		writeError(w, http.StatusNotFound, models.ErrTicketNotFound.Error())
		return
	}

	saveQuantitiesToSession(session, quantitiesOf(cart))
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeData(w, map[string]any{
		"tickets": cart.Tickets,
		"total":   cart.Total(),
	})
}

// ViewCart returns the current selection and its total
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	cart := buildCart(h.catalog.Catalog(r.Context()), getQuantitiesFromSession(session))
	selection := cart.Selection()
	if selection == nil {
		selection = []models.Ticket{}
	}
	writeData(w, map[string]any{
		"selection": selection,
		"total":     cart.Total(),
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	saveQuantitiesToSession(session, map[int]int{})
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	writeData(w, map[string]any{"total": 0})
}
