package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise-dev/spendwise/internal/config"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	return New(t.TempDir(), config.Default()).Router()
}

func doJSON(t *testing.T, mux *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func register(t *testing.T, mux *chi.Mux, username, password string) {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/auth/register", "",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func login(t *testing.T, mux *chi.Mux, username, password string) string {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/auth/login", "",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func addExpense(t *testing.T, mux *chi.Mux, token, date, category, amount string) {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/api/expenses", token, map[string]any{
		"date":     date,
		"category": category,
		"amount":   amount,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
}

func TestRegisterDuplicate(t *testing.T) {
	mux := newTestRouter(t)

	register(t, mux, "alice", "pw1")

	rec := doJSON(t, mux, http.MethodPost, "/auth/register", "",
		map[string]string{"username": "alice", "password": "pw2"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")

	// Wrong password and unknown user get the same response.
	recWrong := doJSON(t, mux, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "alice", "password": "nope"})
	recUnknown := doJSON(t, mux, http.MethodPost, "/auth/login", "",
		map[string]string{"username": "mallory", "password": "pw1"})

	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, recWrong.Body.String(), recUnknown.Body.String())
}

func TestLogoutInvalidatesToken(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")

	rec := doJSON(t, mux, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEndpointsRequireToken(t *testing.T) {
	mux := newTestRouter(t)

	for _, path := range []string{"/api/dashboard", "/api/expenses", "/api/charts"} {
		rec := doJSON(t, mux, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "GET %s", path)
	}
}

func TestDashboardEndToEnd(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")

	addExpense(t, mux, token, "2024-01-05", "Food", "10.00")
	addExpense(t, mux, token, "2024-01-06", "Food", "5.00")
	addExpense(t, mux, token, "2024-01-07", "Travel", "20.00")

	rec := doJSON(t, mux, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total       string `json:"total"`
		MonthTotal  string `json:"month_total"`
		Average     string `json:"average"`
		TopCategory string `json:"top_category"`
		Recent      []struct {
			Date     string `json:"date"`
			Category string `json:"category"`
			Amount   string `json:"amount"`
		} `json:"recent"`
	}
	decodeBody(t, rec, &body)

	// Money fields keep two decimal places, like the CSV table.
	assert.Equal(t, "35.00", body.Total)
	assert.Equal(t, "0.00", body.MonthTotal)
	assert.Equal(t, "11.67", body.Average)
	assert.Equal(t, "Food", body.TopCategory)
	require.Len(t, body.Recent, 3)
	assert.Equal(t, "2024-01-07", body.Recent[0].Date, "recent list is newest first")
	assert.Equal(t, "20.00", body.Recent[0].Amount)
}

func TestDashboardEmpty(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")

	rec := doJSON(t, mux, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total       string `json:"total"`
		Average     string `json:"average"`
		TopCategory string `json:"top_category"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "0.00", body.Total)
	assert.Equal(t, "N/A", body.Average)
	assert.Equal(t, "N/A", body.TopCategory)
}

func TestExpensesAreScopedToUser(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	register(t, mux, "bob", "pw2")

	aliceToken := login(t, mux, "alice", "pw1")
	bobToken := login(t, mux, "bob", "pw2")

	addExpense(t, mux, aliceToken, "2024-01-05", "Food", "10.00")

	rec := doJSON(t, mux, http.MethodGet, "/api/expenses", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var bobList []any
	decodeBody(t, rec, &bobList)
	assert.Empty(t, bobList)
}

func TestAddExpenseRejectsUnknownCategory(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")

	rec := doJSON(t, mux, http.MethodPost, "/api/expenses", token, map[string]any{
		"date":     "2024-01-05",
		"category": "Gadgets",
		"amount":   "10.00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddExpenseRejectsBadAmount(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")

	for _, amount := range []string{"0", "-5.00"} {
		rec := doJSON(t, mux, http.MethodPost, "/api/expenses", token, map[string]any{
			"date":     "2024-01-05",
			"category": "Food",
			"amount":   amount,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %s", amount)
	}
}

func TestChartsPagination(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")
	addExpense(t, mux, token, "2024-01-05", "Food", "10.00")

	var body struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
		Charts     []struct {
			Title string `json:"title"`
		} `json:"charts"`
	}

	rec := doJSON(t, mux, http.MethodGet, "/api/charts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Equal(t, 0, body.Page)
	assert.Equal(t, 4, body.TotalPages)
	require.Len(t, body.Charts, 3)

	// Previous from page 0 wraps to the last page.
	rec = doJSON(t, mux, http.MethodPost, "/api/charts/prev", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Equal(t, 3, body.Page)
	require.Len(t, body.Charts, 1)

	// Next from the last page wraps back to 0.
	rec = doJSON(t, mux, http.MethodPost, "/api/charts/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.Equal(t, 0, body.Page)
}

func TestLoginResetsChartCursor(t *testing.T) {
	mux := newTestRouter(t)
	register(t, mux, "alice", "pw1")
	token := login(t, mux, "alice", "pw1")
	addExpense(t, mux, token, "2024-01-05", "Food", "10.00")

	rec := doJSON(t, mux, http.MethodPost, "/api/charts/next", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A fresh login starts over at page 0.
	token = login(t, mux, "alice", "pw1")
	rec = doJSON(t, mux, http.MethodGet, "/api/charts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Page int `json:"page"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 0, body.Page)
}

func TestRegisterEmptyPayload(t *testing.T) {
	mux := newTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/auth/register", "",
		map[string]string{"username": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
