package infra

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"purelife/internal/models/db_models"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

func AllModels() []interface{} {
	return []interface{}{
		&db_models.Member{},
		&db_models.Admin{},
		&db_models.Product{},
		&db_models.SubscriptionPlan{},
		&db_models.CartItem{},
		&db_models.Order{},
		&db_models.OrderItem{},
		&db_models.MemberSubscription{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("schema migrated", "tables", len(AllModels()))
	return nil
}

// SeedAdmin creates the admin account when it does not exist yet.
// It reports whether a row was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, account, password, name string) (bool, error) {
	if account == "" || password == "" {
		return false, errors.New("admin account and password are required")
	}

	var existing db_models.Admin
	err := db.WithContext(ctx).First(&existing, "account = ?", account).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := &db_models.Admin{
		Account:      account,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, err
	}
	logger.Info("admin seeded", "account", account)
	return true, nil
}
