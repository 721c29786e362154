package dashboard

import (
	"context"
	"testing"
	"time"

	"mypocket-backend/internal/models"
	"mypocket-backend/internal/transaction"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBudgetStore struct {
	budgets []models.Budget
}

func (f *fakeBudgetStore) ListByPeriod(_ context.Context, userID string, month, year int) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeTransactionReader struct {
	transactions []models.Transaction
}

func (f *fakeTransactionReader) ListMatching(_ context.Context, flt transaction.Filter) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.UserID != flt.UserID {
			continue
		}
		if flt.CategoryID != "" && t.CategoryID != flt.CategoryID {
			continue
		}
		if flt.Type != "" && t.Type != flt.Type {
			continue
		}
		if t.Date.Before(flt.Start) || !t.Date.Before(flt.End) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	catFood   = models.Category{ID: "cat-food", UserID: "user-1", Name: "Food", Type: models.CategoryTypeExpense}
	catTravel = models.Category{ID: "cat-travel", UserID: "user-1", Name: "Travel", Type: models.CategoryTypeExpense}
	catSalary = models.Category{ID: "cat-salary", UserID: "user-1", Name: "Salary", Type: models.CategoryTypeIncome}
)

func txn(cat models.Category, typ models.TransactionType, amount string, day int) models.Transaction {
	return models.Transaction{
		UserID:     "user-1",
		CategoryID: cat.ID,
		Category:   cat,
		Amount:     dec(amount),
		Type:       typ,
		Date:       time.Date(2026, 1, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestMonthlySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("should total income and expense separately and net the balance", func(t *testing.T) {
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			txn(catSalary, models.TransactionTypeIncome, "3000", 1),
			txn(catFood, models.TransactionTypeExpense, "200", 5),
			txn(catFood, models.TransactionTypeExpense, "150", 20),
			// Next month: must not count.
			{
				UserID: "user-1", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("999"), Type: models.TransactionTypeExpense,
				Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		}}
		svc := NewService(&fakeBudgetStore{}, txns)

		summary, err := svc.MonthlySummary(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		assert.Equal(t, "3000", summary.TotalIncome.String())
		assert.Equal(t, "350", summary.TotalExpense.String())
		assert.Equal(t, "2650", summary.Balance.String())
	})

	t.Run("should report zeros for a month with no activity", func(t *testing.T) {
		svc := NewService(&fakeBudgetStore{}, &fakeTransactionReader{})

		summary, err := svc.MonthlySummary(ctx, "user-1", 6, 2026)
		require.NoError(t, err)
		assert.True(t, summary.TotalIncome.IsZero())
		assert.True(t, summary.TotalExpense.IsZero())
		assert.True(t, summary.Balance.IsZero())
	})

	t.Run("should allow a negative balance", func(t *testing.T) {
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			txn(catSalary, models.TransactionTypeIncome, "100", 1),
			txn(catFood, models.TransactionTypeExpense, "250", 5),
		}}
		svc := NewService(&fakeBudgetStore{}, txns)

		summary, err := svc.MonthlySummary(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		assert.Equal(t, "-150", summary.Balance.String())
	})

	t.Run("should not leak another user's transactions", func(t *testing.T) {
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			{
				UserID: "user-2", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("500"), Type: models.TransactionTypeExpense,
				Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			},
		}}
		svc := NewService(&fakeBudgetStore{}, txns)

		summary, err := svc.MonthlySummary(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		assert.True(t, summary.TotalExpense.IsZero())
	})
}

func TestBudgetVsActual(t *testing.T) {
	ctx := context.Background()

	t.Run("should pair budgets with actuals and append budgetless categories", func(t *testing.T) {
		budgets := &fakeBudgetStore{budgets: []models.Budget{
			{
				ID: "budget-1", UserID: "user-1", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("1000"), Month: 1, Year: 2026, Type: models.BudgetTypeExpense,
			},
		}}
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			txn(catFood, models.TransactionTypeExpense, "200", 5),
			txn(catFood, models.TransactionTypeExpense, "300", 12),
			txn(catTravel, models.TransactionTypeExpense, "400", 8),
		}}
		svc := NewService(budgets, txns)

		rows, err := svc.BudgetVsActual(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		food := rows[0]
		assert.Equal(t, "Food", food.Category.Name)
		assert.Equal(t, "expense", food.Category.Type)
		assert.Equal(t, "1000", food.BudgetAmount.String())
		assert.Equal(t, "500", food.ActualAmount.String())
		assert.Equal(t, "500", food.Difference.String())
		assert.InDelta(t, 50, food.PercentageUsed, 1e-9)

		travel := rows[1]
		assert.Equal(t, "Travel", travel.Category.Name)
		assert.True(t, travel.BudgetAmount.IsZero())
		assert.Equal(t, "400", travel.ActualAmount.String())
		assert.Equal(t, "-400", travel.Difference.String())
		assert.Equal(t, float64(100), travel.PercentageUsed)
	})

	t.Run("should emit a zero-actual row for a budget with no activity", func(t *testing.T) {
		budgets := &fakeBudgetStore{budgets: []models.Budget{
			{
				ID: "budget-1", UserID: "user-1", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("1000"), Month: 1, Year: 2026, Type: models.BudgetTypeExpense,
			},
		}}
		svc := NewService(budgets, &fakeTransactionReader{})

		rows, err := svc.BudgetVsActual(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].ActualAmount.IsZero())
		assert.Equal(t, "1000", rows[0].Difference.String())
		assert.Equal(t, float64(0), rows[0].PercentageUsed)
	})

	t.Run("should show overspend as a negative difference past 100 percent", func(t *testing.T) {
		budgets := &fakeBudgetStore{budgets: []models.Budget{
			{
				ID: "budget-1", UserID: "user-1", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("400"), Month: 1, Year: 2026, Type: models.BudgetTypeExpense,
			},
		}}
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			txn(catFood, models.TransactionTypeExpense, "600", 15),
		}}
		svc := NewService(budgets, txns)

		rows, err := svc.BudgetVsActual(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "-200", rows[0].Difference.String())
		assert.InDelta(t, 150, rows[0].PercentageUsed, 1e-9)
	})

	t.Run("should read a zero budget with activity as fully used", func(t *testing.T) {
		budgets := &fakeBudgetStore{budgets: []models.Budget{
			{
				ID: "budget-1", UserID: "user-1", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("0"), Month: 1, Year: 2026, Type: models.BudgetTypeExpense,
			},
		}}
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			txn(catFood, models.TransactionTypeExpense, "50", 3),
		}}
		svc := NewService(budgets, txns)

		rows, err := svc.BudgetVsActual(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, float64(100), rows[0].PercentageUsed)
	})

	t.Run("should return an empty slice when nothing happened", func(t *testing.T) {
		svc := NewService(&fakeBudgetStore{}, &fakeTransactionReader{})

		rows, err := svc.BudgetVsActual(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("should only consider budgets of the requested period", func(t *testing.T) {
		budgets := &fakeBudgetStore{budgets: []models.Budget{
			{
				ID: "budget-1", UserID: "user-1", CategoryID: catFood.ID, Category: catFood,
				Amount: dec("1000"), Month: 2, Year: 2026, Type: models.BudgetTypeExpense,
			},
		}}
		txns := &fakeTransactionReader{transactions: []models.Transaction{
			txn(catFood, models.TransactionTypeExpense, "100", 5),
		}}
		svc := NewService(budgets, txns)

		rows, err := svc.BudgetVsActual(ctx, "user-1", 1, 2026)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		// January has no budget, so Food appears as a budgetless row.
		assert.True(t, rows[0].BudgetAmount.IsZero())
		assert.Equal(t, "100", rows[0].ActualAmount.String())
	})
}
