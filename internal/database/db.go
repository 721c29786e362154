package database

import (
	"log"

	"mypocket-backend/internal/config"
	"mypocket-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and migrates the schema. The
// returned handle is passed to the services at construction; nothing in
// this codebase reaches for a package-level connection.
//
// TranslateError is on so that the composite unique index on budgets
// (and the unique email on users) surfaces as gorm.ErrDuplicatedKey,
// which the services turn into their domain errors.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
	); err != nil {
		return nil, err
	}

	log.Println("Database connected, migration complete")
	return db, nil
}
