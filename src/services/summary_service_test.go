package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/wealthfolio/backend/src/models"
)

var now = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

func tx(kind string, amount float64, category string, date time.Time) models.Transaction {
	return models.Transaction{
		UserID:   "u1",
		Kind:     kind,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func TestComputeFinancialSummary_MonthlyStats(t *testing.T) {
	svc := NewSummaryService()

	lastMonth := now.AddDate(0, -1, 0)
	summary := svc.ComputeFinancialSummary(nil, []models.Transaction{
		tx(models.KindIncome, 3000, "", now),
		tx(models.KindExpense, 1200, "Rent", now),
		tx(models.KindExpense, 300, "Food", now),
		tx(models.KindTransfer, 500, "", now),       // transfers count toward neither sum
		tx(models.KindIncome, 9999, "", lastMonth),  // outside the current month
		tx(models.KindExpense, 9999, "", lastMonth), // outside the current month
	}, now)

	assert.Equal(t, 3000.0, summary.MonthlyStats.Income)
	assert.Equal(t, 1500.0, summary.MonthlyStats.Expenses)
	assert.Equal(t, 1500.0, summary.MonthlyStats.Savings)
	assert.Equal(t, 50.0, summary.MonthlyStats.SavingsRate)
	assert.Equal(t, 1500.0, summary.NetWorth)
}

func TestComputeFinancialSummary_NegativeSavingsRateFloored(t *testing.T) {
	svc := NewSummaryService()

	summary := svc.ComputeFinancialSummary(nil, []models.Transaction{
		tx(models.KindIncome, 1000, "", now),
		tx(models.KindExpense, 1200, "", now),
	}, now)

	assert.Equal(t, -200.0, summary.MonthlyStats.Savings)
	assert.Equal(t, 0.0, summary.MonthlyStats.SavingsRate, "negative rate is floored for display")
	assert.Equal(t, -200.0, summary.NetWorth)
}

func TestComputeFinancialSummary_ZeroIncome(t *testing.T) {
	svc := NewSummaryService()

	summary := svc.ComputeFinancialSummary(nil, []models.Transaction{
		tx(models.KindExpense, 100, "", now),
	}, now)

	assert.Equal(t, 0.0, summary.MonthlyStats.Income)
	assert.Equal(t, 0.0, summary.MonthlyStats.SavingsRate)
}

func TestComputeFinancialSummary_StableShape(t *testing.T) {
	svc := NewSummaryService()

	summary := svc.ComputeFinancialSummary(nil, nil, now)

	// Placeholder breakdowns are zeroed and the series are empty, never nil.
	assert.Equal(t, models.AssetBreakdown{}, summary.Assets)
	assert.Equal(t, models.LiabilityBreakdown{}, summary.Liabilities)
	require.NotNil(t, summary.NetWorthHistory)
	require.NotNil(t, summary.WealthForecast)
	assert.Empty(t, summary.NetWorthHistory)
	assert.Empty(t, summary.WealthForecast)
}

func TestComputeBudgetSummary_GroupsByCategory(t *testing.T) {
	svc := NewSummaryService()

	budget := svc.ComputeBudgetSummary([]models.Transaction{
		tx(models.KindExpense, 100, "Food", now),
		tx(models.KindExpense, 50, "Food", now),
		tx(models.KindExpense, 20, "", now), // no category
		tx(models.KindIncome, 5000, "Salary", now),
		tx(models.KindExpense, 75, "Food", now.AddDate(0, -1, 0)),
	}, now)

	require.Len(t, budget.BudgetData, 2)
	assert.Equal(t, models.BudgetRow{Category: "Food", Amount: 150}, budget.BudgetData[0])
	assert.Equal(t, models.BudgetRow{Category: "Uncategorized", Amount: 20}, budget.BudgetData[1])
	assert.Equal(t, 170.0, budget.TotalBudget)
}

func TestComputeBudgetSummary_NoExpenses(t *testing.T) {
	svc := NewSummaryService()

	budget := svc.ComputeBudgetSummary([]models.Transaction{
		tx(models.KindIncome, 5000, "Salary", now),
		tx(models.KindExpense, 75, "Food", now.AddDate(0, -2, 0)),
	}, now)

	require.NotNil(t, budget.BudgetData)
	assert.Empty(t, budget.BudgetData)
	assert.Equal(t, 0.0, budget.TotalBudget)
}

func TestComputeBudgetSummary_FirstSeenOrder(t *testing.T) {
	svc := NewSummaryService()

	budget := svc.ComputeBudgetSummary([]models.Transaction{
		tx(models.KindExpense, 10, "Transport", now),
		tx(models.KindExpense, 30, "Food", now),
		tx(models.KindExpense, 5, "Transport", now),
	}, now)

	require.Len(t, budget.BudgetData, 2)
	assert.Equal(t, "Transport", budget.BudgetData[0].Category)
	assert.Equal(t, "Food", budget.BudgetData[1].Category)
	assert.Equal(t, 45.0, budget.TotalBudget)
}
