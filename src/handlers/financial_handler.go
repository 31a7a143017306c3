package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/services"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/utils"
)

type FinancialHandler struct {
	portfolios   *storage.PortfolioRepository
	transactions *storage.TransactionRepository
	summary      *services.SummaryService
}

func NewFinancialHandler(portfolios *storage.PortfolioRepository, transactions *storage.TransactionRepository, summary *services.SummaryService) *FinancialHandler {
	return &FinancialHandler{
		portfolios:   portfolios,
		transactions: transactions,
		summary:      summary,
	}
}

func (h *FinancialHandler) HandleGetFinancialSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	portfolios, err := h.portfolios.FindByUser(userID)
	if err != nil {
		logger.L.Error("Failed to load portfolios for summary", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", errorStatus(err))
		return
	}
	transactions, err := h.transactions.FindByUser(userID)
	if err != nil {
		logger.L.Error("Failed to load transactions for summary", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", errorStatus(err))
		return
	}

	// The reference timestamp is read once and used for all filtering in
	// this call.
	summary := h.summary.ComputeFinancialSummary(portfolios, transactions, time.Now())
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *FinancialHandler) HandleGetBudgetData(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	transactions, err := h.transactions.FindByUser(userID)
	if err != nil {
		logger.L.Error("Failed to load transactions for budget", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", errorStatus(err))
		return
	}

	budget := h.summary.ComputeBudgetSummary(transactions, time.Now())
	utils.WriteJSON(w, http.StatusOK, budget)
}

// HandleUpdateFinancialData echoes the submitted payload back. Persisting it
// would mean creating the underlying transactions and portfolio items, which
// the dashboard does through the dedicated endpoints instead.
func (h *FinancialHandler) HandleUpdateFinancialData(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetUserIDFromContext(r.Context()); !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Financial data updated successfully",
		"data":    payload,
	})
}
