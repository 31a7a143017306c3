package models

import "time"

// Transaction kinds accepted by the API. Direction is carried by the kind;
// amounts are always sign-less.
const (
	KindIncome   = "income"
	KindExpense  = "expense"
	KindTransfer = "transfer"
)

// ValidKind reports whether kind is one of the three enumerated values.
func ValidKind(kind string) bool {
	return kind == KindIncome || kind == KindExpense || kind == KindTransfer
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Asset struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	CurrentPrice float64 `json:"currentPrice"`
}

type Portfolio struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Assets     []Asset   `json:"assets"`
	TotalValue float64   `json:"totalValue"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TotalAssetValue sums quantity x current price over the asset list. Portfolio
// totals are always derived through this; callers never supply them directly.
func TotalAssetValue(assets []Asset) float64 {
	var total float64
	for _, a := range assets {
		total += a.Quantity * a.CurrentPrice
	}
	return total
}

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Kind        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"` // empty means uncategorized
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Goal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Partial-update payloads. A nil field keeps the stored value.

type UserUpdate struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

type PortfolioUpdate struct {
	Name   *string  `json:"name"`
	Assets *[]Asset `json:"assets"`
}

type TransactionUpdate struct {
	Kind        *string    `json:"type"`
	Amount      *float64   `json:"amount"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

type GoalUpdate struct {
	Name          *string    `json:"name"`
	TargetAmount  *float64   `json:"targetAmount"`
	CurrentAmount *float64   `json:"currentAmount"`
	TargetDate    *time.Time `json:"targetDate"`
}
