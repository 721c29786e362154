package dashboard

import (
	"context"
	"strings"

	"mypocket-backend/internal/models"
	"mypocket-backend/internal/transaction"

	"github.com/shopspring/decimal"
)

type BudgetStore interface {
	// ListByPeriod returns the user's budgets for one month across all
	// budget types, category preloaded.
	ListByPeriod(ctx context.Context, userID string, month, year int) ([]models.Budget, error)
}

type TransactionReader interface {
	ListMatching(ctx context.Context, f transaction.Filter) ([]models.Transaction, error)
}

type MonthlySummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

type CategoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type BudgetVsActualRow struct {
	Category       CategoryInfo    `json:"category"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount"`
	ActualAmount   decimal.Decimal `json:"actualAmount"`
	Difference     decimal.Decimal `json:"difference"`
	PercentageUsed float64         `json:"percentageUsed"`
}

type Service struct {
	budgets BudgetStore
	txns    TransactionReader
}

func NewService(budgets BudgetStore, txns TransactionReader) *Service {
	return &Service{budgets: budgets, txns: txns}
}

// MonthlySummary totals one month of the user's transactions by type. An
// out-of-range month simply yields an empty window and all-zero totals;
// range checking is the transport layer's job.
func (s *Service) MonthlySummary(ctx context.Context, userID string, month, year int) (*MonthlySummary, error) {
	start, end := transaction.MonthRange(month, year)

	txns, err := s.txns.ListMatching(ctx, transaction.Filter{
		UserID: userID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for i := range txns {
		switch txns[i].Type {
		case models.TransactionTypeIncome:
			totalIncome = totalIncome.Add(txns[i].Amount)
		case models.TransactionTypeExpense:
			totalExpense = totalExpense.Add(txns[i].Amount)
		}
	}

	return &MonthlySummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome.Sub(totalExpense),
	}, nil
}

type actualEntry struct {
	category CategoryInfo
	amount   decimal.Decimal
}

// BudgetVsActual emits one row per budgeted category for the month, then
// one for each category with transaction activity but no budget. Rows keep
// insertion order: budgets first, then the extra categories in the order
// their transactions were seen.
func (s *Service) BudgetVsActual(ctx context.Context, userID string, month, year int) ([]BudgetVsActualRow, error) {
	start, end := transaction.MonthRange(month, year)

	budgets, err := s.budgets.ListByPeriod(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	txns, err := s.txns.ListMatching(ctx, transaction.Filter{
		UserID: userID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		return nil, err
	}

	actuals := make(map[string]*actualEntry)
	order := make([]string, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		if entry, ok := actuals[t.CategoryID]; ok {
			entry.amount = entry.amount.Add(t.Amount)
			continue
		}
		actuals[t.CategoryID] = &actualEntry{
			category: toCategoryInfo(&t.Category),
			amount:   t.Amount,
		}
		order = append(order, t.CategoryID)
	}

	rows := make([]BudgetVsActualRow, 0, len(budgets)+len(order))
	budgeted := make(map[string]bool, len(budgets))

	for i := range budgets {
		b := &budgets[i]
		actual := decimal.Zero
		if entry, ok := actuals[b.CategoryID]; ok {
			actual = entry.amount
		}
		rows = append(rows, BudgetVsActualRow{
			Category:       toCategoryInfo(&b.Category),
			BudgetAmount:   b.Amount,
			ActualAmount:   actual,
			Difference:     b.Amount.Sub(actual),
			PercentageUsed: percentageUsed(b.Amount, actual),
		})
		budgeted[b.CategoryID] = true
	}

	for _, categoryID := range order {
		if budgeted[categoryID] {
			continue
		}
		entry := actuals[categoryID]
		rows = append(rows, BudgetVsActualRow{
			Category:       entry.category,
			BudgetAmount:   decimal.Zero,
			ActualAmount:   entry.amount,
			Difference:     entry.amount.Neg(),
			PercentageUsed: percentageUsed(decimal.Zero, entry.amount),
		})
	}

	return rows, nil
}

// percentageUsed defines the zero-budget edge explicitly: any activity
// against a zero budget reads as 100%, none as 0%.
func percentageUsed(budget, actual decimal.Decimal) float64 {
	if budget.IsZero() {
		if actual.IsPositive() {
			return 100
		}
		return 0
	}
	return actual.Div(budget).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func toCategoryInfo(c *models.Category) CategoryInfo {
	return CategoryInfo{
		ID:   c.ID,
		Name: c.Name,
		Type: strings.ToLower(string(c.Type)),
	}
}
