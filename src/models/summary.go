package models

// Wire shapes for the derived summaries. Downstream consumers rely on every
// field being present, so placeholder sub-fields are emitted as zeroes and the
// time series as empty arrays rather than omitted.

type InvestmentBreakdown struct {
	Stocks        float64 `json:"stocks"`
	MutualFunds   float64 `json:"mutualFunds"`
	FixedDeposits float64 `json:"fixedDeposits"`
	PPF           float64 `json:"ppf"`
}

type AssetBreakdown struct {
	Cash         float64             `json:"cash"`
	BankAccounts float64             `json:"bankAccounts"`
	Investments  InvestmentBreakdown `json:"investments"`
	Property     float64             `json:"property"`
	Gold         float64             `json:"gold"`
}

type LiabilityBreakdown struct {
	HomeLoan     float64 `json:"homeLoan"`
	CarLoan      float64 `json:"carLoan"`
	PersonalLoan float64 `json:"personalLoan"`
	CreditCards  float64 `json:"creditCards"`
	OtherLoans   float64 `json:"otherLoans"`
}

type MonthlyStats struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savingsRate"`
}

type NetWorthPoint struct {
	Month    string  `json:"month"`
	NetWorth float64 `json:"netWorth"`
}

type FinancialSummary struct {
	NetWorth        float64            `json:"netWorth"`
	Assets          AssetBreakdown     `json:"assets"`
	Liabilities     LiabilityBreakdown `json:"liabilities"`
	MonthlyStats    MonthlyStats       `json:"monthlyStats"`
	NetWorthHistory []NetWorthPoint    `json:"netWorthHistory"`
	WealthForecast  []NetWorthPoint    `json:"wealthForecast"`
}

type BudgetRow struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type BudgetSummary struct {
	BudgetData  []BudgetRow `json:"budgetData"`
	TotalBudget float64     `json:"totalBudget"`
}
