package database

import (
	"log"

	"mypocket-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCategories = []struct {
	Name string
	Type models.CategoryType
}{
	{"Salary", models.CategoryTypeIncome},
	{"Freelance", models.CategoryTypeIncome},
	{"Investments", models.CategoryTypeIncome},
	{"Food", models.CategoryTypeExpense},
	{"Transport", models.CategoryTypeExpense},
	{"Housing", models.CategoryTypeExpense},
	{"Entertainment", models.CategoryTypeExpense},
	{"Healthcare", models.CategoryTypeExpense},
	{"Utilities", models.CategoryTypeExpense},
	{"Shopping", models.CategoryTypeExpense},
	{"Education", models.CategoryTypeExpense},
}

// Seed creates the demo user with a default category set. Safe to run on
// every startup: existing rows are left untouched.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         "Demo User",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		return err
	}
	// Re-read so we hold the stored ID when the row already existed.
	if err := db.Where("email = ?", user.Email).First(&user).Error; err != nil {
		return err
	}

	for _, c := range seedCategories {
		cat := models.Category{
			UserID: user.ID,
			Name:   c.Name,
			Type:   c.Type,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}, {Name: "type"}},
			DoNothing: true,
		}).Create(&cat).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded demo user %s with %d default categories", user.Email, len(seedCategories))
	return nil
}
