package budget

import (
	"context"
	"errors"

	"mypocket-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store used outside of tests. The unique
// index idx_budget_period is the single enforcement point for the
// one-budget-per-period rule; with TranslateError on, a violation comes
// back as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("year, month, created_at").
		Find(&budgets).Error
	return budgets, err
}

func (s *GormStore) ListByCategory(ctx context.Context, categoryID, userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.WithContext(ctx).
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Order("year, month, created_at").
		Find(&budgets).Error
	return budgets, err
}

// ListByPeriod returns every budget of the user for one month regardless
// of type, with the category loaded. The dashboard's budget-vs-actual
// report is built from this.
func (s *GormStore) ListByPeriod(ctx context.Context, userID string, month, year int) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Preload("Category").
		Order("created_at").
		Find(&budgets).Error
	return budgets, err
}

func (s *GormStore) FindByID(ctx context.Context, id, userID string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *GormStore) Create(ctx context.Context, b *models.Budget) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *GormStore) Update(ctx context.Context, b *models.Budget) error {
	return s.db.WithContext(ctx).Save(b).Error
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Budget{}, "id = ?", id).Error
}
