package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/utils"
)

type PortfolioHandler struct {
	portfolios *storage.PortfolioRepository
}

func NewPortfolioHandler(portfolios *storage.PortfolioRepository) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios}
}

func (h *PortfolioHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}
	portfolios, err := h.portfolios.FindByUser(userID)
	if err != nil {
		logger.L.Error("Failed to list portfolios", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, portfolios)
}

func (h *PortfolioHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Name   string         `json:"name"`
		Assets []models.Asset `json:"assets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		utils.SendJSONError(w, "Portfolio name is required", http.StatusBadRequest)
		return
	}

	portfolio, err := h.portfolios.Create(userID, payload.Name, payload.Assets)
	if err != nil {
		utils.SendJSONError(w, err.Error(), errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, portfolio)
}

func (h *PortfolioHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolios.FindByID(r.PathValue("id"))
	if err != nil {
		utils.SendJSONError(w, "Portfolio not found", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, portfolio)
}

func (h *PortfolioHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update models.PortfolioUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	portfolio, err := h.portfolios.UpdateByID(r.PathValue("id"), update)
	if err != nil {
		utils.SendJSONError(w, err.Error(), errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, portfolio)
}

func (h *PortfolioHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.portfolios.DeleteByID(r.PathValue("id")); err != nil {
		utils.SendJSONError(w, "Portfolio not found", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Portfolio deleted successfully"})
}
