package transaction

import (
	"context"
	"errors"

	"mypocket-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store used outside of tests. Its
// SumAmount/ListMatching side doubles as the aggregation source for the
// budget and dashboard services.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&txns).Error
	return txns, err
}

func (s *GormStore) FindByID(ctx context.Context, id, userID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *GormStore) Create(ctx context.Context, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

func (s *GormStore) Update(ctx context.Context, txn *models.Transaction) error {
	return s.db.WithContext(ctx).Save(txn).Error
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error
}

func (s *GormStore) filtered(ctx context.Context, f Filter) *gorm.DB {
	q := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ?", f.UserID).
		Where("date >= ? AND date < ?", f.Start, f.End)
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return q
}

// SumAmount totals the matching amounts. No matches is a plain zero, not
// an error.
func (s *GormStore) SumAmount(ctx context.Context, f Filter) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.filtered(ctx, f).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (s *GormStore) ListMatching(ctx context.Context, f Filter) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.filtered(ctx, f).
		Preload("Category").
		Find(&txns).Error
	return txns, err
}
