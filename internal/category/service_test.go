package category

import (
	"context"
	"fmt"
	"testing"

	"mypocket-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	categories []*models.Category
	nextID     int
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id, userID string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id && c.UserID == userID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(_ context.Context, cat *models.Category) error {
	if cat.ID == "" {
		f.nextID++
		cat.ID = fmt.Sprintf("cat-%d", f.nextID)
	}
	copied := *cat
	f.categories = append(f.categories, &copied)
	return nil
}

func (f *fakeStore) Update(_ context.Context, cat *models.Category) error {
	for i, c := range f.categories {
		if c.ID == cat.ID {
			copied := *cat
			f.categories[i] = &copied
			return nil
		}
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("should create with an uppercased type", func(t *testing.T) {
		svc := NewService(&fakeStore{})

		cat, err := svc.Create(ctx, "user-1", CreateInput{Name: "Groceries", Type: "expense"})
		require.NoError(t, err)
		assert.NotEmpty(t, cat.ID)
		assert.Equal(t, models.CategoryTypeExpense, cat.Type)
		assert.Equal(t, "user-1", cat.UserID)
	})

	t.Run("should reject an unknown type", func(t *testing.T) {
		svc := NewService(&fakeStore{})

		_, err := svc.Create(ctx, "user-1", CreateInput{Name: "Stuff", Type: "TRANSFER"})
		require.Error(t, err)
		assert.EqualError(t, err, "Invalid category type: TRANSFER")

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("should report missing and foreign categories the same way", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store)
		cat, err := svc.Create(ctx, "user-1", CreateInput{Name: "Groceries", Type: "EXPENSE"})
		require.NoError(t, err)

		_, err = svc.GetByID(ctx, "missing", "user-1")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.GetByID(ctx, cat.ID, "user-2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should merge partial updates", func(t *testing.T) {
		svc := NewService(&fakeStore{})
		cat, err := svc.Create(ctx, "user-1", CreateInput{Name: "Groceries", Type: "EXPENSE"})
		require.NoError(t, err)

		name := "Food"
		updated, err := svc.Update(ctx, cat.ID, "user-1", UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Food", updated.Name)
		assert.Equal(t, models.CategoryTypeExpense, updated.Type)
	})

	t.Run("should refuse to update across owners", func(t *testing.T) {
		svc := NewService(&fakeStore{})
		cat, err := svc.Create(ctx, "user-1", CreateInput{Name: "Groceries", Type: "EXPENSE"})
		require.NoError(t, err)

		name := "Hijacked"
		_, err = svc.Update(ctx, cat.ID, "user-2", UpdateInput{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should delete and return the snapshot", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store)
		cat, err := svc.Create(ctx, "user-1", CreateInput{Name: "Groceries", Type: "EXPENSE"})
		require.NoError(t, err)

		deleted, err := svc.Delete(ctx, cat.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, cat.ID, deleted.ID)
		assert.Empty(t, store.categories)

		_, err = svc.Delete(ctx, cat.ID, "user-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should list only the caller's categories", func(t *testing.T) {
		svc := NewService(&fakeStore{})
		_, err := svc.Create(ctx, "user-1", CreateInput{Name: "Groceries", Type: "EXPENSE"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, "user-2", CreateInput{Name: "Salary", Type: "INCOME"})
		require.NoError(t, err)

		list, err := svc.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Groceries", list[0].Name)
	})
}
