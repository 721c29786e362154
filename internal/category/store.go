package category

import (
	"context"
	"errors"

	"mypocket-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store used outside of tests.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	var cats []models.Category
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&cats).Error
	return cats, err
}

func (s *GormStore) FindByID(ctx context.Context, id, userID string) (*models.Category, error) {
	var cat models.Category
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *GormStore) Create(ctx context.Context, cat *models.Category) error {
	return s.db.WithContext(ctx).Create(cat).Error
}

func (s *GormStore) Update(ctx context.Context, cat *models.Category) error {
	return s.db.WithContext(ctx).Save(cat).Error
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}
