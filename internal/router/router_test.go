package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/handler"
	"github.com/iliyamo/restaurant-booking/internal/kitchen"
	"github.com/iliyamo/restaurant-booking/internal/session"
)

const secret = "router-secret"

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("chef"), bcrypt.MinCost)
	require.NoError(t, err)

	cat := catalog.Default()
	reg := session.NewRegistry(time.Hour, nil)
	e := echo.New()
	RegisterRoutes(e)
	v1 := e.Group("/v1")
	passThrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	RegisterPublic(v1, handler.NewPublicHandler(cat), handler.NewSessionHandler(reg, secret, time.Hour, string(hash), nil), passThrough)
	RegisterGuest(v1, handler.NewGuestHandler(reg, cat, 5, nil, nil, nil), secret)
	RegisterAdmin(v1, handler.NewAdminHandler(kitchen.NewBoard(kitchen.SeedOrders(cat)), nil, nil, nil), secret)
	return e
}

func send(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestRoutes_GuestAndAdminAreSeparated(t *testing.T) {
	e := newServer(t)

	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/v1/menu", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, send(e, http.MethodGet, "/v1/cart", "", "").Code)

	guest := token(t, send(e, http.MethodPost, "/v1/session", "", ""))
	admin := token(t, send(e, http.MethodPost, "/v1/admin/login", "", `{"password":"chef"}`))

	assert.Equal(t, http.StatusOK, send(e, http.MethodPost, "/v1/cart/items", guest, `{"item_id":"b1"}`).Code)
	assert.Equal(t, http.StatusOK, send(e, http.MethodPost, "/v1/seats/A3/select", guest, "").Code)
	assert.Equal(t, http.StatusForbidden, send(e, http.MethodGet, "/v1/admin/orders", guest, "").Code)

	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/v1/admin/orders", admin, "").Code)
	assert.Equal(t, http.StatusForbidden, send(e, http.MethodGet, "/v1/cart", admin, "").Code)

	rec := send(e, http.MethodPost, "/v1/cart/checkout", guest, `{"customer_name":"Asha"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRoutes_SessionsSurviveAcrossRequests(t *testing.T) {
	e := newServer(t)
	guest := token(t, send(e, http.MethodPost, "/v1/session", "", ""))

	send(e, http.MethodPost, "/v1/cart/items", guest, `{"item_id":"v1"}`)
	send(e, http.MethodPost, "/v1/cart/items", guest, `{"item_id":"v1"}`)

	var cart struct {
		ItemCount int `json:"item_count"`
		Subtotal  int `json:"subtotal"`
	}
	rec := send(e, http.MethodGet, "/v1/cart", guest, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, 120, cart.Subtotal)
}
