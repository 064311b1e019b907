package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-dev/spendwise/internal/activity"
	"github.com/spendwise-dev/spendwise/internal/charts"
	"github.com/spendwise-dev/spendwise/internal/model"
	"github.com/spendwise-dev/spendwise/internal/report"
	"github.com/spendwise-dev/spendwise/internal/session"
	"github.com/spendwise-dev/spendwise/internal/users"
)

const dateFormat = "2006-01-02"

// recentLimit caps the dashboard's recent-transactions list.
const recentLimit = 10

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type expensePayload struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// expenseJSON renders amounts with two decimal places, the same money
// format the CSV table stores.
type expenseJSON struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

func toExpenseJSON(e model.Expense) expenseJSON {
	return expenseJSON{
		Date:        e.Date.Format(dateFormat),
		Category:    e.Category,
		Amount:      e.Amount.StringFixed(2),
		Description: e.Description,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	err := s.users.Register(creds.Username, creds.Password)
	switch {
	case errors.Is(err, users.ErrDuplicateUser):
		http.Error(w, "This username is already taken", http.StatusConflict)
		return
	case errors.Is(err, users.ErrEmptyCredentials):
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("Failed to register: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordActivity(creds.Username, activity.ActionRegister, "")
	writeJSON(w, http.StatusCreated, map[string]string{"username": creds.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	token, err := s.sessions.Login(creds.Username, creds.Password)
	if errors.Is(err, session.ErrAuthFailed) {
		// Same response for unknown user and wrong password.
		http.Error(w, "Incorrect username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to log in: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordActivity(creds.Username, activity.ActionLogin, "")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	s.sessions.Logout(r.Header.Get(TokenHeader))
	s.recordActivity(sess.Username, activity.ActionLogout, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	var payload expensePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateFormat, payload.Date)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid date %q, want YYYY-MM-DD", payload.Date), http.StatusBadRequest)
		return
	}

	if !s.cfg.HasCategory(payload.Category) {
		http.Error(w, fmt.Sprintf("Unknown category %q", payload.Category), http.StatusBadRequest)
		return
	}

	e := model.Expense{
		Username:    sess.Username,
		Date:        date,
		Category:    payload.Category,
		Amount:      payload.Amount,
		Description: payload.Description,
	}
	if err := s.expenses.Add(e); err != nil {
		http.Error(w, fmt.Sprintf("Failed to add expense: %v", err), http.StatusBadRequest)
		return
	}

	s.recordActivity(sess.Username, activity.ActionAddExpense,
		fmt.Sprintf("%s %s", payload.Category, payload.Amount.StringFixed(2)))
	writeJSON(w, http.StatusCreated, toExpenseJSON(e))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	records, err := s.expenses.ListForUser(sess.Username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list expenses: %v", err), http.StatusInternalServerError)
		return
	}

	result := make([]expenseJSON, 0, len(records))
	for _, e := range records {
		result = append(result, toExpenseJSON(e))
	}
	writeJSON(w, http.StatusOK, result)
}

type dashboardPayload struct {
	Total       string        `json:"total"`
	MonthTotal  string        `json:"month_total"`
	Average     string        `json:"average"`
	TopCategory string        `json:"top_category"`
	Recent      []expenseJSON `json:"recent"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	records, err := s.expenses.ListForUser(sess.Username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load expenses: %v", err), http.StatusInternalServerError)
		return
	}

	snap := report.Summarize(records, time.Now())
	payload := dashboardPayload{
		Total:       snap.Total.StringFixed(2),
		MonthTotal:  snap.MonthTotal.StringFixed(2),
		Average:     report.NA,
		TopCategory: snap.TopCategory,
		Recent:      recentExpenses(records),
	}
	if snap.HasAverage {
		payload.Average = snap.Average.StringFixed(2)
	}
	writeJSON(w, http.StatusOK, payload)
}

// recentExpenses returns up to recentLimit records, newest date first.
func recentExpenses(records []model.Expense) []expenseJSON {
	sorted := make([]model.Expense, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}

	result := make([]expenseJSON, 0, len(sorted))
	for _, e := range sorted {
		result = append(result, toExpenseJSON(e))
	}
	return result
}

type chartsPayload struct {
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Charts     []charts.Chart `json:"charts"`
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	s.writeChartsPage(w, sess)
}

func (s *Server) handleChartsNext(w http.ResponseWriter, r *http.Request) {
	s.turnChartsPage(w, r, s.sessions.NextChartPage)
}

func (s *Server) handleChartsPrev(w http.ResponseWriter, r *http.Request) {
	s.turnChartsPage(w, r, s.sessions.PrevChartPage)
}

func (s *Server) turnChartsPage(w http.ResponseWriter, r *http.Request, turn func(string, int) (int, error)) {
	sess, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	records, err := s.expenses.ListForUser(sess.Username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load expenses: %v", err), http.StatusInternalServerError)
		return
	}

	all := charts.BuildAll(records)
	page, err := turn(r.Header.Get(TokenHeader), charts.Pages(len(all)))
	if err != nil {
		http.Error(w, "Unauthorized: invalid session token", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, chartsPayload{
		Page:       page,
		TotalPages: charts.Pages(len(all)),
		Charts:     charts.Page(all, page),
	})
}

func (s *Server) writeChartsPage(w http.ResponseWriter, sess session.Session) {
	records, err := s.expenses.ListForUser(sess.Username)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load expenses: %v", err), http.StatusInternalServerError)
		return
	}

	all := charts.BuildAll(records)
	writeJSON(w, http.StatusOK, chartsPayload{
		Page:       sess.ChartPage,
		TotalPages: charts.Pages(len(all)),
		Charts:     charts.Page(all, sess.ChartPage),
	})
}

func (s *Server) recordActivity(username, action, details string) {
	if err := activity.Record(s.dataDir, username, action, details); err != nil {
		log.Printf("Failed to record activity: %v", err)
	}
}
