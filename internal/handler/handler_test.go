package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shivanand-hulikatti/hotel-reservation/internal/digest"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/metrics"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/model"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/repository"
	"github.com/Shivanand-hulikatti/hotel-reservation/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithDigest(t, digest.SHA256{})
}

func newTestServerWithDigest(t *testing.T, d digest.Digester) *httptest.Server {
	t.Helper()
	catalog, err := repository.NewInventoryCatalog(repository.DefaultHotels())
	require.NoError(t, err)
	m := metrics.New()
	engine := service.NewBookingEngine(repository.NewAccountRegistry(), catalog, d, service.WithMetrics(m))
	log := slog.New(slog.DiscardHandler)

	srv := httptest.NewServer(NewRouter(NewBookingHandler(engine), log, m.Handler()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestListHotels(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/hotels")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hotels []struct {
		Index       int         `json:"index"`
		Hotel       model.Hotel `json:"hotel"`
		Description string      `json:"description"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hotels))
	require.Len(t, hotels, 4)
	assert.Equal(t, 1, hotels[0].Index)
	assert.Equal(t, "Hotel California", hotels[0].Hotel.Name)
	assert.Equal(t, "1. Hotel California in Los Angeles - $200 per night - 10 rooms available", hotels[0].Description)
}

func TestBookingFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/bookings", `{"hotel_index":1,"nights":2,"rooms":3}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "You need to login first.", body["error"])

	resp, body = do(t, srv, http.MethodPost, "/register", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User alice registered successfully.", body["message"])

	resp, body = do(t, srv, http.MethodPost, "/register", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "User alice already exists.", body["error"])

	resp, body = do(t, srv, http.MethodPost, "/login", `{"username":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid username or password.", body["error"])

	resp, body = do(t, srv, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User alice logged in successfully.", body["message"])

	resp, body = do(t, srv, http.MethodGet, "/bookings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "No bookings found.", body["message"])

	resp, body = do(t, srv, http.MethodPost, "/bookings", `{"hotel_index":1,"nights":2,"rooms":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1200, body["total_price"])
	assert.Equal(t, "Booking successful: Hotel California for 2 nights and 3 rooms. Total price: $1200", body["message"])

	resp, body = do(t, srv, http.MethodPost, "/bookings", `{"hotel_index":1,"nights":1,"rooms":8}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.EqualValues(t, 7, body["available"])
	assert.Equal(t, "Not enough rooms available. Only 7 rooms left.", body["error"])

	resp, body = do(t, srv, http.MethodPost, "/bookings", `{"hotel_index":9,"nights":1,"rooms":1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invalid hotel choice.", body["error"])

	resp, _ = do(t, srv, http.MethodPost, "/bookings", `{"hotel_index":1,"nights":0,"rooms":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/bookings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bookings, ok := body["bookings"].([]any)
	require.True(t, ok)
	require.Len(t, bookings, 1)
	first := bookings[0].(map[string]any)
	assert.Equal(t, "1. Hotel California for 2 nights and 3 rooms. Total price: $1200", first["description"])

	resp, body = do(t, srv, http.MethodDelete, "/bookings/2", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invalid booking index.", body["error"])

	resp, _ = do(t, srv, http.MethodDelete, "/bookings/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, srv, http.MethodDelete, "/bookings/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cancelled booking: Hotel California for 2 nights and 3 rooms.", body["message"])

	resp, body = do(t, srv, http.MethodPut, "/profile", `{"username":"alicia","password":"new"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Profile updated: Username - alicia", body["message"])

	resp, body = do(t, srv, http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	account := body["account"].(map[string]any)
	assert.Equal(t, "alicia", account["username"])
	assert.NotContains(t, account, "credential_token")
}

func TestRejectsMalformedBodies(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name, path, body string
	}{
		{"unknown field", "/register", `{"username":"a","password":"b","admin":true}`},
		{"missing password", "/register", `{"username":"a"}`},
		{"not json", "/login", `username=a`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, srv, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body["error"], "invalid request body")
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBookRejectsOutOfRangeInput(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := do(t, srv, http.MethodPost, "/register", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"hotel index zero", `{"hotel_index":0,"nights":1,"rooms":1}`, http.StatusNotFound, "Invalid hotel choice."},
		{"hotel index negative", `{"hotel_index":-2,"nights":1,"rooms":1}`, http.StatusNotFound, "Invalid hotel choice."},
		{"hotel index missing", `{"nights":1,"rooms":1}`, http.StatusNotFound, "Invalid hotel choice."},
		{"too many nights", `{"hotel_index":1,"nights":92233720368547758,"rooms":1}`, http.StatusBadRequest, ""},
		{"a year and a day", `{"hotel_index":1,"nights":366,"rooms":1}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, srv, http.MethodPost, "/bookings", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.message != "" {
				assert.Equal(t, tt.message, body["error"])
			}
		})
	}

	resp, body := do(t, srv, http.MethodGet, "/bookings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "No bookings found.", body["message"])
}

func TestMultibytePasswordOverBcryptLimit(t *testing.T) {
	srv := newTestServerWithDigest(t, digest.Bcrypt{Cost: bcrypt.MinCost})
	long := strings.Repeat("é", 72)

	resp, body := do(t, srv, http.MethodPost, "/register", `{"username":"bob","password":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password must be at most 72 bytes.", body["error"])

	resp, _ = do(t, srv, http.MethodPost, "/register", `{"username":"bob","password":"short"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/login", `{"username":"bob","password":"short"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, srv, http.MethodPut, "/profile", `{"username":"bobby","password":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password must be at most 72 bytes.", body["error"])
}
