package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
	"purelife/pkg/utils"
)

func init() {
	utils.SetBcryptCost(4)
}

// NewTestDB returns a migrated in-memory sqlite database. The pool is pinned
// to one connection so every query sees the same memory database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infra.Migrate(db))
	return db
}

func CreateMember(t testing.TB, db *gorm.DB, email string) *db_models.Member {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	m := &db_models.Member{
		Account:      email,
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Member",
		Level:        db_models.MemberLevelGeneral,
		IsActive:     true,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

type ProductOption func(p *db_models.Product)

func WithPromotion(price int64) ProductOption {
	return func(p *db_models.Product) {
		p.PromotionPrice = decimal.NewNullDecimal(decimal.NewFromInt(price))
	}
}

func WithStatus(status string) ProductOption {
	return func(p *db_models.Product) { p.Status = status }
}

func WithCategory(category string) ProductOption {
	return func(p *db_models.Product) { p.Category = category }
}

func WithSales(n int) ProductOption {
	return func(p *db_models.Product) { p.SalesCount = n }
}

func CreateProduct(t testing.TB, db *gorm.DB, name string, price int64, stock int, opts ...ProductOption) *db_models.Product {
	t.Helper()

	p := &db_models.Product{
		Name:          name,
		Category:      "vitamin",
		Description:   name + " description",
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
		Status:        db_models.ProductStatusAvailable,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreatePlan(t testing.TB, db *gorm.DB, productID uint, cycleType string, cycleDays int, rate string) *db_models.SubscriptionPlan {
	t.Helper()

	plan := &db_models.SubscriptionPlan{
		ProductID: productID,
		CycleType: cycleType,
		CycleDays: cycleDays,
	}
	if rate != "" {
		plan.DiscountRate = decimal.NewNullDecimal(decimal.RequireFromString(rate))
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}
