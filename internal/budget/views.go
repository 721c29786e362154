package budget

import (
	"time"

	"mypocket-backend/internal/models"

	"github.com/shopspring/decimal"
)

// The view types are what the API renders; none of them are persisted.

type BudgetView struct {
	ID         string            `json:"id"`
	Amount     decimal.Decimal   `json:"amount"`
	CategoryID string            `json:"categoryId"`
	Month      int               `json:"month"`
	Year       int               `json:"year"`
	Type       models.BudgetType `json:"type"`
}

type BudgetWithSpending struct {
	BudgetView
	Spent                 decimal.Decimal `json:"spent"`
	Remaining             decimal.Decimal `json:"remaining"`
	UtilizationPercentage float64         `json:"utilizationPercentage"`
}

type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type BudgetWithCategory struct {
	BudgetView
	Category *CategoryView `json:"category"`
}

type TransactionView struct {
	ID          string                 `json:"id"`
	Amount      decimal.Decimal        `json:"amount"`
	CategoryID  string                 `json:"categoryId"`
	Type        models.TransactionType `json:"type"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
}

type BudgetDetails struct {
	BudgetWithSpending
	Category     *CategoryView     `json:"category"`
	Transactions []TransactionView `json:"transactions"`
}

func toBudgetView(b *models.Budget) BudgetView {
	return BudgetView{
		ID:         b.ID,
		Amount:     b.Amount,
		CategoryID: b.CategoryID,
		Month:      b.Month,
		Year:       b.Year,
		Type:       b.Type,
	}
}

func toTransactionView(t *models.Transaction) TransactionView {
	return TransactionView{
		ID:          t.ID,
		Amount:      t.Amount,
		CategoryID:  t.CategoryID,
		Type:        t.Type,
		Date:        t.Date.UTC().Format(time.RFC3339),
		Description: t.Description,
	}
}

func newBudgetWithSpending(b *models.Budget, spent decimal.Decimal) *BudgetWithSpending {
	return &BudgetWithSpending{
		BudgetView:            toBudgetView(b),
		Spent:                 spent,
		Remaining:             b.Amount.Sub(spent),
		UtilizationPercentage: utilization(b.Amount, spent),
	}
}
