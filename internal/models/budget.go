package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BudgetType string

const (
	BudgetTypeExpense BudgetType = "EXPENSE"
	BudgetTypeSavings BudgetType = "SAVINGS"
)

// Budget caps spending (or a savings target) for one category in one
// calendar month. A user may hold at most one budget per
// (category, type, month, year) tuple; the composite unique index is the
// authority for that rule.
type Budget struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	UserID     string `gorm:"type:uuid;index;not null;uniqueIndex:idx_budget_period"`
	User       User
	CategoryID string `gorm:"type:uuid;not null;uniqueIndex:idx_budget_period"`
	Category   Category
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type       BudgetType      `gorm:"size:20;not null;uniqueIndex:idx_budget_period"`
	Month      int             `gorm:"not null;uniqueIndex:idx_budget_period;check:month_valid,month >= 1 AND month <= 12"`
	Year       int             `gorm:"not null;uniqueIndex:idx_budget_period"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
