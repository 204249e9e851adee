package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realtydash/realty-dashboard/internal/auth"
	"github.com/realtydash/realty-dashboard/internal/engine"
	"github.com/realtydash/realty-dashboard/internal/ledger"
	"github.com/realtydash/realty-dashboard/internal/store"
	"github.com/realtydash/realty-dashboard/pkg/datetime"
	"go.uber.org/zap"
)

// loadOrSeed fetches the caller's data, handing out the starter dataset when
// nothing is stored yet so the dashboard is never degenerate.
func (h *handler) loadOrSeed(c *gin.Context) (string, ledger.UserData, bool) {
	username, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return "", ledger.UserData{}, false
	}

	data, err := h.store.Load(username)
	if errors.Is(err, store.ErrNotFound) {
		return username, ledger.SeedUserData(h.now()), true
	}
	if err != nil {
		h.logger.Error("load failed",
			zap.String("op", "server.loadOrSeed"),
			zap.String("username", username),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return "", ledger.UserData{}, false
	}
	return username, data, true
}

func (h *handler) loadData(c *gin.Context) {
	_, data, ok := h.loadOrSeed(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *handler) saveData(c *gin.Context) {
	username, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var data ledger.UserData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed data payload"})
		return
	}
	if !validateTransactions(c, data.Transactions) {
		return
	}

	if err := h.persist(c, username, data); err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// validateTransactions enforces the shape invariants at the API boundary so
// the engine never sees negative magnitudes.
func validateTransactions(c *gin.Context, txs []ledger.Transaction) bool {
	for _, t := range txs {
		if t.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "transaction amounts must be non-negative"})
			return false
		}
	}
	return true
}

func (h *handler) persist(c *gin.Context, username string, data ledger.UserData) error {
	if err := h.store.Save(username, data); err != nil {
		h.logger.Error("save failed",
			zap.String("op", "server.persist"),
			zap.String("username", username),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return err
	}
	return nil
}

type transactionRequest struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount" binding:"required"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
}

func (req transactionRequest) validate(c *gin.Context) bool {
	if *req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be non-negative"})
		return false
	}
	if req.Date != "" {
		if _, err := datetime.ParseDay(req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return false
		}
	}
	return true
}

func (h *handler) createTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}
	if !req.validate(c) {
		return
	}

	username, data, ok := h.loadOrSeed(c)
	if !ok {
		return
	}

	tx := ledger.NewTransaction(h.now(), req.Description, req.Category, *req.Amount, ledger.ParseTransactionType(req.Type))
	if req.Date != "" {
		tx.Date = req.Date
	}
	if req.Status != "" {
		tx.Status = ledger.ParseStatus(req.Status)
	}

	data.Transactions = ledger.Append(data.Transactions, tx)
	if err := h.persist(c, username, data); err != nil {
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *handler) updateTransaction(c *gin.Context) {
	id := c.Param("id")

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}
	if !req.validate(c) {
		return
	}

	username, data, ok := h.loadOrSeed(c)
	if !ok {
		return
	}

	existing, found := ledger.FindByID(data.Transactions, id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	existing.Description = req.Description
	existing.Category = req.Category
	existing.Amount = *req.Amount
	existing.Type = ledger.ParseTransactionType(req.Type)
	if req.Date != "" {
		existing.Date = req.Date
	}
	if req.Status != "" {
		existing.Status = ledger.ParseStatus(req.Status)
	}

	data.Transactions = ledger.ReplaceByID(data.Transactions, existing)
	if err := h.persist(c, username, data); err != nil {
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *handler) deleteTransaction(c *gin.Context) {
	id := c.Param("id")

	username, data, ok := h.loadOrSeed(c)
	if !ok {
		return
	}

	if _, found := ledger.FindByID(data.Transactions, id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	data.Transactions = ledger.RemoveByID(data.Transactions, id)
	if err := h.persist(c, username, data); err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handler) updateSettings(c *gin.Context) {
	var settings ledger.GlobalSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed settings payload"})
		return
	}

	username, data, ok := h.loadOrSeed(c)
	if !ok {
		return
	}

	// The settings struct is replaced wholesale on any change.
	data.Settings = settings
	if err := h.persist(c, username, data); err != nil {
		return
	}
	c.JSON(http.StatusOK, settings)
}

type dashboardResponse struct {
	ReferenceDate     string                 `json:"referenceDate"`
	Metrics           engine.Metrics         `json:"metrics"`
	MonthlySeries     []engine.MonthBucket   `json:"monthlySeries"`
	CategoryBreakdown []engine.CategorySlice `json:"categoryBreakdown"`
	Forecast          []engine.ForecastMonth `json:"forecast"`
	Periods           engine.PeriodSummaries `json:"periods"`
	Goal              engine.GoalProgress    `json:"goal"`
}

// getDashboard runs every derivation over the caller's current data. Results
// are recomputed from scratch on each request; each derivation is a pure
// function of the loaded snapshot and the reference date.
func (h *handler) getDashboard(c *gin.Context) {
	_, data, ok := h.loadOrSeed(c)
	if !ok {
		return
	}

	ref := h.now()
	if at := c.Query("at"); at != "" {
		parsed, err := datetime.ParseDay(at)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at must be YYYY-MM-DD"})
			return
		}
		ref = parsed
	}

	periods := engine.SummarizePeriods(data.Transactions, data.Settings, ref)

	c.JSON(http.StatusOK, dashboardResponse{
		ReferenceDate:     ref.Format(datetime.DateLayout),
		Metrics:           engine.ComputeMetrics(data.Transactions, data.Settings),
		MonthlySeries:     engine.BuildMonthlySeries(data.Transactions, data.Settings),
		CategoryBreakdown: engine.BuildCategoryBreakdown(data.Transactions),
		Forecast:          engine.ProjectForward(data.Transactions, data.Settings, ref),
		Periods:           periods,
		Goal:              engine.MeasureGoal(periods.Month, data.Settings),
	})
}
