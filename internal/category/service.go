package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mypocket-backend/internal/models"
)

// ErrNotFound is returned whenever a category does not exist for the
// requesting user. A category owned by someone else is reported the same
// way as a missing one.
var ErrNotFound = errors.New("category not found")

// ValidationError carries a user-correctable message verbatim to the API.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
	FindByID(ctx context.Context, id, userID string) (*models.Category, error)
	Create(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id string) error
}

type CreateInput struct {
	Name string
	Type string
}

type UpdateInput struct {
	Name *string
	Type *string
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Category, error) {
	return s.store.ListByUser(ctx, userID)
}

// GetByID resolves a category scoped to its owner. This is the lookup the
// budget and transaction services depend on: absent and foreign-owned both
// come back as ErrNotFound, nothing else is translated.
func (s *Service) GetByID(ctx context.Context, id, userID string) (*models.Category, error) {
	cat, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.Category, error) {
	catType, err := normalizeType(in.Type)
	if err != nil {
		return nil, err
	}

	cat := models.Category{
		UserID: userID,
		Name:   in.Name,
		Type:   catType,
	}
	if err := s.store.Create(ctx, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (*models.Category, error) {
	cat, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Type != nil {
		catType, err := normalizeType(*in.Type)
		if err != nil {
			return nil, err
		}
		cat.Type = catType
	}

	if err := s.store.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) (*models.Category, error) {
	cat, err := s.store.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	if err := s.store.Delete(ctx, cat.ID); err != nil {
		return nil, err
	}
	return cat, nil
}

func normalizeType(raw string) (models.CategoryType, error) {
	switch models.CategoryType(strings.ToUpper(raw)) {
	case models.CategoryTypeIncome:
		return models.CategoryTypeIncome, nil
	case models.CategoryTypeExpense:
		return models.CategoryTypeExpense, nil
	default:
		return "", validationf("Invalid category type: %s", raw)
	}
}
