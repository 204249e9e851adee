package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/realtydash/realty-dashboard/internal/auth"
	"github.com/realtydash/realty-dashboard/internal/config"
	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	conf := &config.Configuration{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: "test-secret", Issuer: "realty-dashboard", ExpireHours: 1},
	}
	authSvc := auth.NewService(st, 4, nil)
	return NewRouter(conf, st, authSvc, nil, "test")
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         username,
		"password":         "s3cretPass",
		"securityQuestion": "First brokerage?",
		"securityAnswer":   "Acme Realty",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "s3cretPass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response missing token: %s", w.Body.String())
	}
	return resp.Token
}

func TestRegisterLoginFlow(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "agent_jane")

	// Duplicate registration rejected.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         "agent_jane",
		"password":         "otherPass1",
		"securityQuestion": "q",
		"securityAnswer":   "a",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, expected 400", w.Code)
	}

	// Wrong password rejected.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "agent_jane",
		"password": "wrongpass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, expected 401", w.Code)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	r := newTestRouter(t)
	registerAndLogin(t, r, "agent_jane")

	w := doJSON(t, r, http.MethodGet, "/api/auth/question?username=agent_jane", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("question status = %d", w.Code)
	}
	var q struct {
		Question string `json:"question"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &q)
	if q.Question != "First brokerage?" {
		t.Errorf("question = %q", q.Question)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/reset", "", gin.H{
		"username":    "agent_jane",
		"answer":      "acme realty",
		"newPassword": "brandNewPass1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "agent_jane",
		"password": "brandNewPass1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login after reset status = %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/data", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated /api/data status = %d, expected 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/dashboard", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bogus token /api/dashboard status = %d, expected 401", w.Code)
	}
}

func TestDataRoundTripAndDashboard(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "agent_jane")

	payload := ledger.UserData{
		Transactions: []ledger.Transaction{
			{ID: "t1", Date: "2024-05-01", Description: "Closing", Category: "Commission",
				Amount: 10000, Type: ledger.TypeIncome, Status: ledger.StatusCompleted},
			{ID: "t2", Date: "2024-05-15", Description: "Staging", Category: "Staging",
				Amount: 4000, Type: ledger.TypeExpense, Status: ledger.StatusCompleted},
		},
		Settings: ledger.GlobalSettings{TaxRate: 25, MonthlyRevenueGoal: 20000, GoalType: ledger.GoalRevenue},
	}
	w := doJSON(t, r, http.MethodPut, "/api/data", token, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("save data status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/dashboard?at=2024-05-20", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		ReferenceDate string `json:"referenceDate"`
		Metrics       struct {
			GrossIncome float64 `json:"grossIncome"`
			NetIncome   float64 `json:"netIncome"`
		} `json:"metrics"`
		MonthlySeries []struct {
			MonthKey string  `json:"monthKey"`
			Income   float64 `json:"income"`
		} `json:"monthlySeries"`
		CategoryBreakdown []struct {
			Category string  `json:"category"`
			Total    float64 `json:"total"`
		} `json:"categoryBreakdown"`
		Forecast []struct {
			Label string `json:"label"`
		} `json:"forecast"`
		Periods struct {
			Month struct {
				Income float64 `json:"income"`
			} `json:"month"`
		} `json:"periods"`
		Goal struct {
			Percent float64 `json:"percent"`
			Display float64 `json:"display"`
		} `json:"goal"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}

	if resp.ReferenceDate != "2024-05-20" {
		t.Errorf("referenceDate = %q", resp.ReferenceDate)
	}
	if resp.Metrics.GrossIncome != 6000 || resp.Metrics.NetIncome != 4500 {
		t.Errorf("metrics = %+v", resp.Metrics)
	}
	if len(resp.MonthlySeries) != 1 || resp.MonthlySeries[0].MonthKey != "2024-05" {
		t.Errorf("monthlySeries = %+v", resp.MonthlySeries)
	}
	if len(resp.CategoryBreakdown) != 1 || resp.CategoryBreakdown[0].Category != "Staging" {
		t.Errorf("categoryBreakdown = %+v", resp.CategoryBreakdown)
	}
	if len(resp.Forecast) != 12 || resp.Forecast[0].Label != "May 24" {
		t.Errorf("forecast = %d months, first %+v", len(resp.Forecast), resp.Forecast[0])
	}
	if resp.Periods.Month.Income != 10000 {
		t.Errorf("month income = %v", resp.Periods.Month.Income)
	}
	if resp.Goal.Percent != 50 || resp.Goal.Display != 50 {
		t.Errorf("goal = %+v", resp.Goal)
	}
}

func TestDashboardSeedsFirstRun(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "agent_jane")

	w := doJSON(t, r, http.MethodGet, "/api/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}
	var resp struct {
		Metrics struct {
			TotalIncome float64 `json:"totalIncome"`
		} `json:"metrics"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Metrics.TotalIncome == 0 {
		t.Error("first-run dashboard shows zero income; expected seeded data")
	}
}

func TestTransactionCRUD(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "agent_jane")

	// Start from a known dataset.
	w := doJSON(t, r, http.MethodPut, "/api/data", token, ledger.UserData{Settings: ledger.DefaultSettings()})
	if w.Code != http.StatusOK {
		t.Fatalf("save data status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"date":        "2024-05-01",
		"description": "Closing",
		"category":    "Commission",
		"amount":      10000,
		"type":        "income",
		"status":      "completed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created ledger.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create response = %s", w.Body.String())
	}
	if created.Status != ledger.StatusCompleted || created.Date != "2024-05-01" {
		t.Errorf("created = %+v", created)
	}

	w = doJSON(t, r, http.MethodPut, "/api/transactions/"+created.ID, token, gin.H{
		"date":        "2024-05-02",
		"description": "Closing (amended)",
		"category":    "Commission",
		"amount":      9000,
		"type":        "income",
		"status":      "pending",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var updated ledger.Transaction
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Amount != 9000 || updated.Status != ledger.StatusPending {
		t.Errorf("updated = %+v", updated)
	}

	w = doJSON(t, r, http.MethodPut, "/api/transactions/missing-id", token, gin.H{"amount": 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("update missing status = %d, expected 404", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+created.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/transactions/"+created.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, expected 404", w.Code)
	}
}

func TestTransactionValidation(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "agent_jane")

	w := doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{"amount": -5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative amount status = %d, expected 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{"amount": 5, "date": "05/01/2024"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed date status = %d, expected 400", w.Code)
	}
}

func TestUpdateSettings(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "agent_jane")

	w := doJSON(t, r, http.MethodPut, "/api/settings", token, gin.H{
		"taxRate":            30,
		"inflationRate":      4,
		"monthlyRevenueGoal": 50000,
		"goalType":           "savings",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("settings status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/data", token, nil)
	var data ledger.UserData
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Settings.TaxRate != 30 || data.Settings.GoalType != ledger.GoalSavings {
		t.Errorf("settings after update = %+v", data.Settings)
	}
}

func TestVersionEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/version", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("version status = %d", w.Code)
	}
	var resp struct {
		Version string `json:"version"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Version != "test" {
		t.Errorf("version = %q, expected test", resp.Version)
	}
}
