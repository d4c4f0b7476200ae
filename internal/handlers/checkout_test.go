package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/services"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/store"
)

func newCheckoutTestClient(t *testing.T, registration *services.MockRegistrationService) *testClient {
	sessionStore := sessions.NewCookieStore([]byte("test-secret"))
	catalog := &services.MockCatalogService{}
	checkouts := store.NewMemoryCheckoutStore()

	cartHandler := NewCartHandler(catalog, sessionStore, logger.NewNop())
	checkoutHandler := NewCheckoutHandler(catalog, registration, checkouts, sessionStore, logger.NewNop())

	r := chi.NewRouter()
	r.Post("/api/cart/items", cartHandler.UpdateCartItem)
	r.Post("/api/checkout", checkoutHandler.StartCheckout)
	r.Get("/api/checkout", checkoutHandler.GetCheckout)
	r.Put("/api/checkout/slots/{index}", checkoutHandler.SaveSlot)
	r.Post("/api/checkout/slots/{index}/open", checkoutHandler.OpenSlot)
	r.Post("/api/checkout/submit", checkoutHandler.Submit)
	return &testClient{t: t, router: r}
}

func addTicket(c *testClient, ticketID int) {
	w := c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {fmt.Sprint(ticketID)}, "op": {"increment"}})
	require.Equal(c.t, http.StatusOK, w.Code)
}

func validSlotJSON() string {
	payload := map[string]string{
		"full_name":           "Asha Patil",
		"email":               "asha@example.com",
		"confirm_email":       "asha@example.com",
		"phone":               "9876543210",
		"date_of_birth":       "1992-04-18",
		"gender":              "female",
		"city":                "Pune",
		"pincode":             "411001",
		"tshirt_size":         "M",
		"disclaimer_accepted": "yes",
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestCheckoutHandler_StartRequiresNonEmptyCart(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	w := c.do(http.MethodPost, "/api/checkout", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCartEmpty.Error(), decodeResponse(t, w)["message"])
}

func TestCheckoutHandler_StartExpandsSelectionInOrder(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	addTicket(c, 1)
	addTicket(c, 1)
	addTicket(c, 3)

	w := c.do(http.MethodPost, "/api/checkout", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]any)
	slots := data["slots"].([]any)
	require.Len(t, slots, 3)
	assert.Equal(t, float64(1), slots[0].(map[string]any)["ticket_id"])
	assert.Equal(t, float64(1), slots[1].(map[string]any)["ticket_id"])
	assert.Equal(t, float64(3), slots[2].(map[string]any)["ticket_id"])
	assert.Equal(t, float64(0), data["open"])
	assert.Equal(t, "editing", data["state"])
}

func TestCheckoutHandler_RestartResetsSlots(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	addTicket(c, 2)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/checkout", "", "").Code)

	// Fill the first slot, then go back to the cart and restart checkout
	w := c.do(http.MethodPut, "/api/checkout/slots/0", validSlotJSON(), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	addTicket(c, 2)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/checkout", "", "").Code)

	resp := decodeResponse(t, c.do(http.MethodGet, "/api/checkout", "", ""))
	slots := resp["data"].(map[string]any)["slots"].([]any)
	require.Len(t, slots, 2)
	for i, raw := range slots {
		slot := raw.(map[string]any)
		assert.Empty(t, slot["full_name"], "slot %d should be reset on re-expansion", i)
	}
}

func TestCheckoutHandler_SaveSlotValidationFailure(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	addTicket(c, 2)
	c.do(http.MethodPost, "/api/checkout", "", "")

	w := c.do(http.MethodPut, "/api/checkout/slots/0", `{"full_name":"Asha Patil"}`, "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeResponse(t, w)
	errs := resp["errors"].([]any)
	require.NotEmpty(t, errs)
	assert.Equal(t, "email", errs[0].(map[string]any)["field"], "first failing field leads the error list")

	state := resp["data"].(map[string]any)
	assert.Equal(t, float64(0), state["open"], "failed validation keeps the slot open")
}

func TestCheckoutHandler_SaveSlotOnlyOpenSlot(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	addTicket(c, 2)
	addTicket(c, 2)
	c.do(http.MethodPost, "/api/checkout", "", "")

	w := c.do(http.MethodPut, "/api/checkout/slots/1", validSlotJSON(), "application/json")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutHandler_OpenLockedSlot(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	addTicket(c, 2)
	addTicket(c, 2)
	addTicket(c, 2)
	c.do(http.MethodPost, "/api/checkout", "", "")

	w := c.do(http.MethodPost, "/api/checkout/slots/2/open", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Fill slot 0, slot 1 unlocks
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/checkout/slots/0", validSlotJSON(), "application/json").Code)
	w = c.do(http.MethodPost, "/api/checkout/slots/0/open", "", "")
	assert.Equal(t, http.StatusOK, w.Code, "filled slots stay reopenable")
	w = c.do(http.MethodPost, "/api/checkout/slots/2/open", "", "")
	assert.Equal(t, http.StatusConflict, w.Code, "slot 2 stays locked while slot 1 is unfilled")
}

func TestCheckoutHandler_SubmitWithInvalidSlotNeverCallsRegister(t *testing.T) {
	registration := &services.MockRegistrationService{}
	c := newCheckoutTestClient(t, registration)
	for i := 0; i < 3; i++ {
		addTicket(c, 2)
	}
	c.do(http.MethodPost, "/api/checkout", "", "")

	// Fill slots 0 and 2 directly through the flow: 0, then leave 1 broken.
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/checkout/slots/0", validSlotJSON(), "application/json").Code)

	w := c.do(http.MethodPost, "/api/checkout/submit", "", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(1), resp["data"].(map[string]any)["open"], "first failing slot reopens")
	assert.Zero(t, registration.SubmitCalls, "register endpoint must not be called")
}

func TestCheckoutHandler_SubmitRedirectsToGateway(t *testing.T) {
	registration := &services.MockRegistrationService{
		SubmitFn: func(ctx context.Context, cs *models.CheckoutSession) (*services.SubmissionResult, error) {
			return &services.SubmissionResult{
				PaymentURL:      "https://gateway.example.com/pay/ORD-77",
				MerchantOrderID: "ORD-77",
				ParticipantIDs:  []string{"p1"},
			}, nil
		},
	}
	c := newCheckoutTestClient(t, registration)
	addTicket(c, 2)
	c.do(http.MethodPost, "/api/checkout", "", "")
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/checkout/slots/0", validSlotJSON(), "application/json").Code)

	w := c.do(http.MethodPost, "/api/checkout/submit", "", "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://gateway.example.com/pay/ORD-77", w.Header().Get("Location"))
	assert.Equal(t, 1, registration.SubmitCalls)
}

func TestCheckoutHandler_SubmitFailureKeepsSlotsForRetry(t *testing.T) {
	registration := &services.MockRegistrationService{
		SubmitFn: func(ctx context.Context, cs *models.CheckoutSession) (*services.SubmissionResult, error) {
			return nil, fmt.Errorf("registration failed: backend down")
		},
	}
	c := newCheckoutTestClient(t, registration)
	addTicket(c, 2)
	c.do(http.MethodPost, "/api/checkout", "", "")
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/api/checkout/slots/0", validSlotJSON(), "application/json").Code)

	w := c.do(http.MethodPost, "/api/checkout/submit", "", "")
	require.Equal(t, http.StatusBadGateway, w.Code)

	// Session survives; a manual retry can run immediately
	resp := decodeResponse(t, c.do(http.MethodGet, "/api/checkout", "", ""))
	slots := resp["data"].(map[string]any)["slots"].([]any)
	assert.Equal(t, "Asha Patil", slots[0].(map[string]any)["full_name"])
	assert.Equal(t, "editing", resp["data"].(map[string]any)["state"])
}

func TestCheckoutHandler_NoActiveSession(t *testing.T) {
	c := newCheckoutTestClient(t, &services.MockRegistrationService{})
	w := c.do(http.MethodGet, "/api/checkout", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrCheckoutNotFound.Error(), decodeResponse(t, w)["message"])
}
