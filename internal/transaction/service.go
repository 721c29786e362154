package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mypocket-backend/internal/category"
	"mypocket-backend/internal/models"

	"github.com/shopspring/decimal"
)

// ValidationError carries a user-correctable message verbatim to the API.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	FindByID(ctx context.Context, id, userID string) (*models.Transaction, error)
	Create(ctx context.Context, txn *models.Transaction) error
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id string) error
}

// CategoryGateway is the slice of the category service the transaction
// service needs: owner-scoped resolution failing with category.ErrNotFound.
type CategoryGateway interface {
	GetByID(ctx context.Context, id, userID string) (*models.Category, error)
}

type CreateInput struct {
	Amount      decimal.Decimal
	Type        string
	CategoryID  string
	Date        time.Time
	Description string
}

type UpdateInput struct {
	Amount      *decimal.Decimal
	Type        *string
	CategoryID  *string
	Date        *time.Time
	Description *string
}

type Service struct {
	store      Store
	categories CategoryGateway
}

func NewService(store Store, categories CategoryGateway) *Service {
	return &Service{store: store, categories: categories}
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.store.ListByUser(ctx, userID)
}

// GetByID returns (nil, nil) for a missing or foreign-owned transaction.
func (s *Service) GetByID(ctx context.Context, id, userID string) (*models.Transaction, error) {
	return s.store.FindByID(ctx, id, userID)
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.Transaction, error) {
	txnType, err := normalizeType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := s.resolveCategory(ctx, in.CategoryID, userID); err != nil {
		return nil, err
	}

	txn := models.Transaction{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Type:        txnType,
		Date:        in.Date.UTC(),
		Description: in.Description,
	}
	if err := s.store.Create(ctx, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (*models.Transaction, error) {
	if in.CategoryID != nil {
		if err := s.resolveCategory(ctx, *in.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	txn, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, nil
	}

	if in.Amount != nil {
		txn.Amount = *in.Amount
	}
	if in.Type != nil {
		txnType, err := normalizeType(*in.Type)
		if err != nil {
			return nil, err
		}
		txn.Type = txnType
	}
	if in.CategoryID != nil {
		txn.CategoryID = *in.CategoryID
	}
	if in.Date != nil {
		txn.Date = in.Date.UTC()
	}
	if in.Description != nil {
		txn.Description = *in.Description
	}

	if err := s.store.Update(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) (*models.Transaction, error) {
	txn, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, nil
	}

	if err := s.store.Delete(ctx, txn.ID); err != nil {
		return nil, err
	}
	return txn, nil
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

func normalizeType(raw string) (models.TransactionType, error) {
	switch models.TransactionType(strings.ToUpper(raw)) {
	case models.TransactionTypeIncome:
		return models.TransactionTypeIncome, nil
	case models.TransactionTypeExpense:
		return models.TransactionTypeExpense, nil
	default:
		return "", validationf("Invalid transaction type: %s", raw)
	}
}
