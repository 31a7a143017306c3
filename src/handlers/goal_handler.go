package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/utils"
)

type GoalHandler struct {
	goals *storage.GoalRepository
}

func NewGoalHandler(goals *storage.GoalRepository) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}
	goals, err := h.goals.FindByUser(userID)
	if err != nil {
		logger.L.Error("Failed to list goals", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Name          string     `json:"name"`
		TargetAmount  float64    `json:"targetAmount"`
		CurrentAmount float64    `json:"currentAmount"`
		TargetDate    *time.Time `json:"targetDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == "" {
		utils.SendJSONError(w, "Goal name is required", http.StatusBadRequest)
		return
	}
	targetDate := time.Time{}
	if payload.TargetDate != nil {
		targetDate = *payload.TargetDate
	}

	goal, err := h.goals.Create(userID, payload.Name, payload.TargetAmount, payload.CurrentAmount, targetDate)
	if err != nil {
		utils.SendJSONError(w, err.Error(), errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update models.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.goals.UpdateByID(r.PathValue("id"), update)
	if err != nil {
		utils.SendJSONError(w, "Goal not found", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.goals.DeleteByID(r.PathValue("id")); err != nil {
		utils.SendJSONError(w, "Goal not found", errorStatus(err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})
}
