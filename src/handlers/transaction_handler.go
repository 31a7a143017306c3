package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/utils"
)

type TransactionHandler struct {
	transactions *storage.TransactionRepository
}

func NewTransactionHandler(transactions *storage.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func (h *TransactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}
	transactions, err := h.transactions.FindByUser(userID)
	if err != nil {
		logger.L.Error("Failed to list transactions", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Kind        string     `json:"type"`
		Amount      float64    `json:"amount"`
		Category    string     `json:"category"`
		Description string     `json:"description"`
		Date        *time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	date := time.Now()
	if payload.Date != nil {
		date = *payload.Date
	}

	transaction, err := h.transactions.Create(userID, payload.Kind, payload.Amount, payload.Category, payload.Description, date)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKind) {
			utils.SendJSONError(w, "Invalid transaction type", http.StatusBadRequest)
			return
		}
		utils.SendJSONError(w, err.Error(), errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, transaction)
}

func (h *TransactionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactions.FindByID(r.PathValue("id"))
	if err != nil {
		utils.SendJSONError(w, "Transaction not found", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, transaction)
}

func (h *TransactionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update models.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	transaction, err := h.transactions.UpdateByID(r.PathValue("id"), update)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKind) {
			utils.SendJSONError(w, "Invalid transaction type", http.StatusBadRequest)
			return
		}
		utils.SendJSONError(w, err.Error(), errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, transaction)
}

func (h *TransactionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.transactions.DeleteByID(r.PathValue("id")); err != nil {
		utils.SendJSONError(w, "Transaction not found", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}
