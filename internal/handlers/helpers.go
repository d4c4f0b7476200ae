package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/middleware"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

const (
	sessionName        = "session"
	cartSessionKey     = "cart_quantities"
	checkoutSessionKey = "checkout_id"
)

// response is the JSON envelope every handler writes
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

// handleRedirect handles redirects appropriately for HTMX vs regular requests
func handleRedirect(w http.ResponseWriter, r *http.Request, url string, statusCode int) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, url, statusCode)
	}
}

// getQuantitiesFromSession reads the saved per-ticket quantities
func getQuantitiesFromSession(session *sessions.Session) map[int]int {
	raw, ok := session.Values[cartSessionKey]
	if !ok {
		return map[int]int{}
	}
	data, ok := raw.(string)
	if !ok {
		return map[int]int{}
	}
	var quantities map[int]int
	if err := json.Unmarshal([]byte(data), &quantities); err != nil {
		return map[int]int{}
	}
	return quantities
}

// saveQuantitiesToSession stores the per-ticket quantities
func saveQuantitiesToSession(session *sessions.Session, quantities map[int]int) {
	data, err := json.Marshal(quantities)
	if err != nil {
		return
	}
	session.Values[cartSessionKey] = string(data)
}

// buildCart rebuilds the cart from the live catalog and the saved
// quantities. Totals always derive from current catalog prices.
func buildCart(catalog []models.Ticket, quantities map[int]int) *models.Cart {
	cart := models.NewCart(catalog)
	for i := range cart.Tickets {
		if q, ok := quantities[cart.Tickets[i].ID]; ok && q > 0 {
			cart.Tickets[i].Quantity = q
		}
	}
	return cart
}

func quantitiesOf(cart *models.Cart) map[int]int {
	quantities := make(map[int]int)
	for _, t := range cart.Tickets {
		if t.Quantity > 0 {
			quantities[t.ID] = t.Quantity
		}
	}
	return quantities
}
