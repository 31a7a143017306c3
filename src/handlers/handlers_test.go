package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/wealthfolio/backend/src/config"
	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/security"
	"github.com/username/wealthfolio/backend/src/services"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/storage/memstore"
)

func TestMain(m *testing.M) {
	config.Cfg = &config.AppConfig{AccessTokenExpiry: time.Hour}
	logger.InitLogger("error")
	os.Exit(m.Run())
}

type testEnv struct {
	repo      *storage.Repository
	auth      *security.AuthService
	user      *UserHandler
	portfolio *PortfolioHandler
	tx        *TransactionHandler
	financial *FinancialHandler
	goal      *GoalHandler
}

func newTestEnv() *testEnv {
	repo := storage.NewRepository(memstore.New(), memstore.New(), func() bool { return true })
	auth := security.NewAuthService("test-secret-key-that-is-long-enough-32b")
	return &testEnv{
		repo:      repo,
		auth:      auth,
		user:      NewUserHandler(auth, repo.Users),
		portfolio: NewPortfolioHandler(repo.Portfolios),
		tx:        NewTransactionHandler(repo.Transactions),
		financial: NewFinancialHandler(repo.Portfolios, repo.Transactions, services.NewSummaryService()),
		goal:      NewGoalHandler(repo.Goals),
	}
}

func authedRequest(method, target, body, userID string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(context.WithValue(r.Context(), userIDContextKey, userID))
}

func TestRegisterLoginProfile(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	env.user.RegisterUserHandler(w, httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"email":"a@example.com","password":"s3cret","name":"Alice"}`)))
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.NotContains(t, w.Body.String(), "s3cret")

	// Duplicate registration is rejected.
	w = httptest.NewRecorder()
	env.user.RegisterUserHandler(w, httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"email":"a@example.com","password":"other","name":"Imposter"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	env.user.LoginUserHandler(w, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"a@example.com","password":"s3cret"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	env.user.LoginUserHandler(w, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"a@example.com","password":"wrong"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Profile through the middleware with the issued token.
	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	r.Header.Set("Authorization", "Bearer "+registered.Token)
	env.user.AuthMiddleware(env.user.ProfileHandler)(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@example.com")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	env.user.AuthMiddleware(env.user.ProfileHandler)(w, httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFinancialSummaryEndpoint(t *testing.T) {
	env := newTestEnv()

	now := time.Now()
	_, err := env.repo.Transactions.Create("u1", models.KindIncome, 1000, "Salary", "", now)
	require.NoError(t, err)
	_, err = env.repo.Transactions.Create("u1", models.KindExpense, 1200, "Rent", "", now)
	require.NoError(t, err)
	_, err = env.repo.Transactions.Create("u1", models.KindExpense, 999, "Rent", "", now.AddDate(0, -1, 0))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.financial.HandleGetFinancialSummary(w, authedRequest(http.MethodGet, "/api/financial/financial-summary", "", "u1"))
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.FinancialSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1000.0, summary.MonthlyStats.Income)
	assert.Equal(t, 1200.0, summary.MonthlyStats.Expenses)
	assert.Equal(t, -200.0, summary.MonthlyStats.Savings)
	assert.Equal(t, 0.0, summary.MonthlyStats.SavingsRate)
	assert.Equal(t, -200.0, summary.NetWorth)

	// The serialized shape keeps the empty series as arrays.
	assert.Contains(t, w.Body.String(), `"netWorthHistory":[]`)
	assert.Contains(t, w.Body.String(), `"wealthForecast":[]`)
}

func TestBudgetDataEndpoint(t *testing.T) {
	env := newTestEnv()

	now := time.Now()
	for _, amount := range []float64{100, 50} {
		_, err := env.repo.Transactions.Create("u1", models.KindExpense, amount, "Food", "", now)
		require.NoError(t, err)
	}
	_, err := env.repo.Transactions.Create("u1", models.KindExpense, 20, "", "", now)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.financial.HandleGetBudgetData(w, authedRequest(http.MethodGet, "/api/financial/budget-data", "", "u1"))
	require.Equal(t, http.StatusOK, w.Code)

	var budget models.BudgetSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budget))
	require.Len(t, budget.BudgetData, 2)
	assert.Equal(t, 170.0, budget.TotalBudget)

	totals := map[string]float64{}
	for _, row := range budget.BudgetData {
		totals[row.Category] = row.Amount
	}
	assert.Equal(t, 150.0, totals["Food"])
	assert.Equal(t, 20.0, totals["Uncategorized"])
}

func TestBudgetDataEndpoint_EmptyMonth(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	env.financial.HandleGetBudgetData(w, authedRequest(http.MethodGet, "/api/financial/budget-data", "", "u1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"budgetData":[],"totalBudget":0}`, w.Body.String())
}

func TestTransactionEndpoints_InvalidKind(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	env.tx.HandleCreate(w, authedRequest(http.MethodPost, "/api/transactions",
		`{"type":"refund","amount":10}`, "u1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid transaction type")
}

func TestPortfolioEndpoints_CreateAndPartialUpdate(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	env.portfolio.HandleCreate(w, authedRequest(http.MethodPost, "/api/portfolios",
		`{"name":"Stocks","assets":[{"symbol":"AAPL","quantity":10,"currentPrice":150}]}`, "u1"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Portfolio
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1500.0, created.TotalValue)

	// Renaming only must leave assets and the derived total untouched.
	w = httptest.NewRecorder()
	r := authedRequest(http.MethodPut, "/api/portfolios/"+created.ID, `{"name":"Tech"}`, "u1")
	r.SetPathValue("id", created.ID)
	env.portfolio.HandleUpdate(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Portfolio
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Tech", updated.Name)
	assert.Equal(t, created.Assets, updated.Assets)
	assert.Equal(t, 1500.0, updated.TotalValue)
}

func TestGoalEndpoints_CRUD(t *testing.T) {
	env := newTestEnv()

	w := httptest.NewRecorder()
	env.goal.HandleCreate(w, authedRequest(http.MethodPost, "/api/goals",
		`{"name":"House","targetAmount":50000}`, "u1"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	env.goal.HandleList(w, authedRequest(http.MethodGet, "/api/goals", "", "u1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID)

	w = httptest.NewRecorder()
	r := authedRequest(http.MethodDelete, "/api/goals/"+created.ID, "", "u1")
	r.SetPathValue("id", created.ID)
	env.goal.HandleDelete(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	env.goal.HandleList(w, authedRequest(http.MethodGet, "/api/goals", "", "u1"))
	assert.JSONEq(t, `[]`, w.Body.String())
}
