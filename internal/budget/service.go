package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mypocket-backend/internal/category"
	"mypocket-backend/internal/models"
	"mypocket-backend/internal/transaction"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ValidationError carries a user-correctable message verbatim to the API.
// API consumers assert on these messages, so the wording is load-bearing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.Budget, error)
	ListByCategory(ctx context.Context, categoryID, userID string) ([]models.Budget, error)
	// FindByID returns (nil, nil) when the budget is absent or owned by
	// someone else.
	FindByID(ctx context.Context, id, userID string) (*models.Budget, error)
	// Create and Update fail with gorm.ErrDuplicatedKey when the
	// (category, type, month, year, user) unique index is violated.
	Create(ctx context.Context, b *models.Budget) error
	// Update writes by primary key only. Ownership is gated by the
	// FindByID pre-check in the service, not by the write's WHERE clause;
	// a concurrent delete between the two is an accepted race.
	Update(ctx context.Context, b *models.Budget) error
	Delete(ctx context.Context, id string) error
}

// CategoryGateway is the slice of the category service the budget service
// needs: owner-scoped resolution failing with category.ErrNotFound.
type CategoryGateway interface {
	GetByID(ctx context.Context, id, userID string) (*models.Category, error)
}

// TransactionReader is the aggregation surface over transactions. The
// transaction.GormStore satisfies it directly.
type TransactionReader interface {
	SumAmount(ctx context.Context, f transaction.Filter) (decimal.Decimal, error)
	ListMatching(ctx context.Context, f transaction.Filter) ([]models.Transaction, error)
}

type CreateInput struct {
	Amount     decimal.Decimal
	CategoryID string
	Month      int
	Year       int
	Type       string
}

type UpdateInput struct {
	Amount     *decimal.Decimal
	CategoryID *string
	Month      *int
	Year       *int
	Type       *string
}

type Service struct {
	store      Store
	categories CategoryGateway
	txns       TransactionReader
}

func NewService(store Store, categories CategoryGateway, txns TransactionReader) *Service {
	return &Service{store: store, categories: categories, txns: txns}
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Budget, error) {
	return s.store.ListByUser(ctx, userID)
}

// GetByID returns (nil, nil) for a missing or foreign-owned budget. The
// caller cannot tell the two apart, which is the point.
func (s *Service) GetByID(ctx context.Context, id, userID string) (*models.Budget, error) {
	return s.store.FindByID(ctx, id, userID)
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.Budget, error) {
	if in.Month < 1 || in.Month > 12 {
		return nil, validationf("Month must be between 1 and 12")
	}

	budgetType, err := normalizeType(in.Type)
	if err != nil {
		return nil, err
	}

	if err := s.resolveCategory(ctx, in.CategoryID, userID); err != nil {
		return nil, err
	}

	b := models.Budget{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Month:      in.Month,
		Year:       in.Year,
		Type:       budgetType,
	}
	if err := s.store.Create(ctx, &b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf(
				"Budget for category %s, type %s, month %d, and year %d already exists",
				in.CategoryID, in.Type, in.Month, in.Year)
		}
		return nil, err
	}
	return &b, nil
}

// Update merges the supplied fields over the stored budget and persists the
// result. A uniqueness collision is reported with the merged values, not
// the raw input; rewriting a budget with its own values never collides.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (*models.Budget, error) {
	if in.Month != nil && (*in.Month < 1 || *in.Month > 12) {
		return nil, validationf("Month must be between 1 and 12")
	}

	if in.CategoryID != nil {
		if err := s.resolveCategory(ctx, *in.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	typeLabel := string(b.Type)
	if in.Amount != nil {
		b.Amount = *in.Amount
	}
	if in.CategoryID != nil {
		b.CategoryID = *in.CategoryID
	}
	if in.Month != nil {
		b.Month = *in.Month
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if in.Type != nil {
		budgetType, err := normalizeType(*in.Type)
		if err != nil {
			return nil, err
		}
		b.Type = budgetType
		typeLabel = *in.Type
	}

	if err := s.store.Update(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf(
				"Budget for category %s, type %s, month %d, and year %d already exists",
				b.CategoryID, typeLabel, b.Month, b.Year)
		}
		return nil, err
	}
	return b, nil
}

// Delete returns the deleted snapshot, or (nil, nil) when the budget is
// missing or foreign-owned.
func (s *Service) Delete(ctx context.Context, id, userID string) (*models.Budget, error) {
	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	if err := s.store.Delete(ctx, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// transactionTypeForBudget maps an EXPENSE budget onto EXPENSE
// transactions and every other budget type (SAVINGS) onto INCOME ones.
// The asymmetry is inherited behavior that clients rely on; see DESIGN.md
// before touching it.
func transactionTypeForBudget(t models.BudgetType) models.TransactionType {
	if t == models.BudgetTypeExpense {
		return models.TransactionTypeExpense
	}
	return models.TransactionTypeIncome
}

func (s *Service) spendFilter(b *models.Budget) transaction.Filter {
	start, end := transaction.MonthRange(b.Month, b.Year)
	return transaction.Filter{
		UserID:     b.UserID,
		CategoryID: b.CategoryID,
		Type:       transactionTypeForBudget(b.Type),
		Start:      start,
		End:        end,
	}
}

func (s *Service) calculateSpent(ctx context.Context, b *models.Budget) (decimal.Decimal, error) {
	return s.txns.SumAmount(ctx, s.spendFilter(b))
}

// SpentAmount is zero for a missing or foreign-owned budget, never an
// error.
func (s *Service) SpentAmount(ctx context.Context, id, userID string) (decimal.Decimal, error) {
	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if b == nil {
		return decimal.Zero, nil
	}
	return s.calculateSpent(ctx, b)
}

// RemainingBudget may go negative: overspending is an ordinary state.
func (s *Service) RemainingBudget(ctx context.Context, id, userID string) (decimal.Decimal, error) {
	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if b == nil {
		return decimal.Zero, nil
	}

	spent, err := s.calculateSpent(ctx, b)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Amount.Sub(spent), nil
}

func utilization(amount, spent decimal.Decimal) float64 {
	if !amount.IsPositive() {
		return 0
	}
	return spent.Div(amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func (s *Service) WithSpending(ctx context.Context, id, userID string) (*BudgetWithSpending, error) {
	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	spent, err := s.calculateSpent(ctx, b)
	if err != nil {
		return nil, err
	}
	return newBudgetWithSpending(b, spent), nil
}

// WithCategory attaches the owning category; a category that no longer
// resolves degrades to nil rather than failing the whole read.
func (s *Service) WithCategory(ctx context.Context, id, userID string) (*BudgetWithCategory, error) {
	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	cat, err := s.lookupCategory(ctx, b.CategoryID, userID)
	if err != nil {
		return nil, err
	}
	return &BudgetWithCategory{BudgetView: toBudgetView(b), Category: cat}, nil
}

// Details is the full composite: budget, category (nullable), the
// transactions counted against it, and the spending figures. Transactions
// and the spent sum are fetched concurrently.
func (s *Service) Details(ctx context.Context, id, userID string) (*BudgetDetails, error) {
	b, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	cat, err := s.lookupCategory(ctx, b.CategoryID, userID)
	if err != nil {
		return nil, err
	}

	var (
		txns  []models.Transaction
		spent decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.txns.ListMatching(gctx, s.spendFilter(b))
		return err
	})
	g.Go(func() error {
		var err error
		spent, err = s.calculateSpent(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(txns))
	for i := range txns {
		views = append(views, toTransactionView(&txns[i]))
	}

	return &BudgetDetails{
		BudgetWithSpending: *newBudgetWithSpending(b, spent),
		Category:           cat,
		Transactions:       views,
	}, nil
}

// ByCategory annotates every budget of one category with its own spend
// figures.
func (s *Service) ByCategory(ctx context.Context, categoryID, userID string) ([]BudgetWithSpending, error) {
	budgets, err := s.store.ListByCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	results := make([]BudgetWithSpending, 0, len(budgets))
	for i := range budgets {
		spent, err := s.calculateSpent(ctx, &budgets[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *newBudgetWithSpending(&budgets[i], spent))
	}
	return results, nil
}

// resolveCategory turns exactly category.ErrNotFound into the validation
// message; any other lookup failure is infrastructure and passes through.
func (s *Service) resolveCategory(ctx context.Context, categoryID, userID string) error {
	_, err := s.categories.GetByID(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return validationf("Category with ID %s does not exist", categoryID)
		}
		return err
	}
	return nil
}

// lookupCategory is the degrading variant used by the composite reads:
// not-found becomes nil, everything else is an error.
func (s *Service) lookupCategory(ctx context.Context, categoryID, userID string) (*CategoryView, error) {
	cat, err := s.categories.GetByID(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &CategoryView{
		ID:   cat.ID,
		Name: cat.Name,
		Type: strings.ToLower(string(cat.Type)),
	}, nil
}

func normalizeType(raw string) (models.BudgetType, error) {
	switch models.BudgetType(strings.ToUpper(raw)) {
	case models.BudgetTypeExpense:
		return models.BudgetTypeExpense, nil
	case models.BudgetTypeSavings:
		return models.BudgetTypeSavings, nil
	default:
		return "", validationf("Invalid budget type: %s", raw)
	}
}
