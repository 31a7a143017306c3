package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/security"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/utils"
)

type UserHandler struct {
	authService *security.AuthService
	users       *storage.UserRepository
}

func NewUserHandler(authService *security.AuthService, users *storage.UserRepository) *UserHandler {
	return &UserHandler{
		authService: authService,
		users:       users,
	}
}

func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if credentials.Email == "" || credentials.Password == "" {
		utils.SendJSONError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	hashedPassword, err := h.authService.HashPassword(credentials.Password)
	if err != nil {
		utils.SendJSONError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user, err := h.users.Create(credentials.Email, hashedPassword, credentials.Name)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			utils.SendJSONError(w, "User already exists", http.StatusBadRequest)
			return
		}
		logger.L.Error("Failed to create user", "error", err)
		utils.SendJSONError(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		utils.SendJSONError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"token":   token,
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.FindCredentialsByEmail(credentials.Email)
	if err != nil {
		logger.L.Debug("Login lookup failed", "email", credentials.Email, "error", err)
		utils.SendJSONError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}
	if err := h.authService.CompareHashAndPassword(user.Password, credentials.Password); err != nil {
		utils.SendJSONError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		utils.SendJSONError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *UserHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Access denied", http.StatusUnauthorized)
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.SendJSONError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to load profile", "userID", userID, "error", err)
		utils.SendJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}
