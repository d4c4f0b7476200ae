package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/services"
)

// testClient runs requests against a router while carrying cookies
// between them, like a browser would
type testClient struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func (c *testClient) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range c.cookies {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, r)
	if got := w.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return w
}

func (c *testClient) form(method, target string, values url.Values) *httptest.ResponseRecorder {
	return c.do(method, target, values.Encode(), "application/x-www-form-urlencoded")
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newCartTestClient(t *testing.T) *testClient {
	sessionStore := sessions.NewCookieStore([]byte("test-secret"))
	h := NewCartHandler(&services.MockCatalogService{}, sessionStore, logger.NewNop())

	r := chi.NewRouter()
	r.Get("/api/tickets", h.ListTickets)
	r.Get("/api/cart", h.ViewCart)
	r.Post("/api/cart/items", h.UpdateCartItem)
	r.Post("/api/cart/clear", h.ClearCart)
	return &testClient{t: t, router: r}
}

func TestCartHandler_IncrementAndTotal(t *testing.T) {
	c := newCartTestClient(t)

	w := c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"1"}, "op": {"increment"}})
	require.Equal(t, http.StatusOK, w.Code)
	w = c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"1"}, "op": {"increment"}})
	require.Equal(t, http.StatusOK, w.Code)
	w = c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"3"}, "op": {"increment"}})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, c.do(http.MethodGet, "/api/cart", "", ""))
	data := resp["data"].(map[string]any)
	// 2x Full Marathon (1199) + 1x 10K (719)
	assert.Equal(t, float64(2*1199+719), data["total"])
	assert.Len(t, data["selection"], 2)
}

func TestCartHandler_DecrementFloorsAtZero(t *testing.T) {
	c := newCartTestClient(t)

	for i := 0; i < 3; i++ {
		w := c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"2"}, "op": {"decrement"}})
		require.Equal(t, http.StatusOK, w.Code)
	}

	resp := decodeResponse(t, c.do(http.MethodGet, "/api/cart", "", ""))
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(0), data["total"])
	assert.Empty(t, data["selection"])
}

func TestCartHandler_UnknownTicket(t *testing.T) {
	c := newCartTestClient(t)
	w := c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"99"}, "op": {"increment"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrTicketNotFound.Error(), decodeResponse(t, w)["message"])
}

func TestCartHandler_InvalidOp(t *testing.T) {
	c := newCartTestClient(t)
	w := c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"1"}, "op": {"add-five"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrInvalidInput.Error(), decodeResponse(t, w)["message"])
}

func TestCartHandler_ClearCart(t *testing.T) {
	c := newCartTestClient(t)
	c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"1"}, "op": {"increment"}})

	w := c.form(http.MethodPost, "/api/cart/clear", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, c.do(http.MethodGet, "/api/cart", "", ""))
	assert.Equal(t, float64(0), resp["data"].(map[string]any)["total"])
}

func TestCartHandler_ListTicketsIncludesQuantities(t *testing.T) {
	c := newCartTestClient(t)
	c.form(http.MethodPost, "/api/cart/items", url.Values{"ticket_id": {"4"}, "op": {"increment"}})

	resp := decodeResponse(t, c.do(http.MethodGet, "/api/tickets", "", ""))
	tickets := resp["data"].(map[string]any)["tickets"].([]any)
	require.Len(t, tickets, 4)

	var fun map[string]any
	for _, raw := range tickets {
		ticket := raw.(map[string]any)
		if ticket["id"] == float64(4) {
			fun = ticket
		}
	}
	require.NotNil(t, fun)
	assert.Equal(t, float64(1), fun["quantity"])
}
