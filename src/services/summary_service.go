package services

import (
	"time"

	"github.com/username/wealthfolio/backend/src/models"
)

// SummaryService derives the financial and budget view models from raw owned
// records. It performs no I/O; any failure belongs to the repository layer
// feeding it. The reference timestamp is fixed once per call so month
// filtering stays consistent even while wall-clock time advances.
type SummaryService struct{}

func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

// ComputeFinancialSummary builds the dashboard summary for one user's records.
// Net worth is the current month's savings; the asset and liability
// sub-breakdowns and both time series are emitted zeroed/empty so the response
// shape stays stable for consumers.
func (s *SummaryService) ComputeFinancialSummary(portfolios []models.Portfolio, transactions []models.Transaction, now time.Time) models.FinancialSummary {
	var totalInvestments float64
	for _, p := range portfolios {
		for _, a := range p.Assets {
			totalInvestments += a.Quantity * a.CurrentPrice
		}
	}
	// Not yet broken out into the assets.investments sub-fields; those stay
	// zeroed until asset classes are tracked per holding.
	_ = totalInvestments

	month, year := now.Month(), now.Year()
	var monthlyIncome, monthlyExpenses float64
	for _, tx := range transactions {
		if tx.Date.Month() != month || tx.Date.Year() != year {
			continue
		}
		switch tx.Kind {
		case models.KindIncome:
			monthlyIncome += tx.Amount
		case models.KindExpense:
			monthlyExpenses += tx.Amount
		}
		// Transfers move money between the user's own accounts and count
		// toward neither sum.
	}

	monthlySavings := monthlyIncome - monthlyExpenses
	var savingsRate float64
	if monthlyIncome > 0 {
		savingsRate = monthlySavings / monthlyIncome * 100
	}
	if savingsRate < 0 {
		// Negative rates are floored for display, not reported.
		savingsRate = 0
	}

	return models.FinancialSummary{
		NetWorth: monthlySavings,
		MonthlyStats: models.MonthlyStats{
			Income:      monthlyIncome,
			Expenses:    monthlyExpenses,
			Savings:     monthlySavings,
			SavingsRate: savingsRate,
		},
		NetWorthHistory: []models.NetWorthPoint{},
		WealthForecast:  []models.NetWorthPoint{},
	}
}

// ComputeBudgetSummary groups the current month's expense transactions by
// category. Rows come out in first-seen category order; a month with no
// expenses yields an empty row list and a zero total, not an error.
func (s *SummaryService) ComputeBudgetSummary(transactions []models.Transaction, now time.Time) models.BudgetSummary {
	month, year := now.Month(), now.Year()

	totals := make(map[string]float64)
	var order []string
	for _, tx := range transactions {
		if tx.Kind != models.KindExpense || tx.Date.Month() != month || tx.Date.Year() != year {
			continue
		}
		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += tx.Amount
	}

	summary := models.BudgetSummary{BudgetData: []models.BudgetRow{}}
	for _, category := range order {
		summary.BudgetData = append(summary.BudgetData, models.BudgetRow{Category: category, Amount: totals[category]})
		summary.TotalBudget += totals[category]
	}
	return summary
}
