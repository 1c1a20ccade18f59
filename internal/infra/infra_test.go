package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"purelife/internal/models/db_models"
	"purelife/pkg/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestTransactionManager_CommitAndRollback(t *testing.T) {
	db := setupTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
			return DB(ctx, db).Create(&db_models.Product{
				Name: "Fish Oil", Category: "omega", Price: decimal.NewFromInt(800),
				StockQuantity: 3, Status: db_models.ProductStatusAvailable,
			}).Error
		})
		require.NoError(t, err)

		var count int64
		db.Model(&db_models.Product{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := DB(ctx, db).Create(&db_models.Product{
				Name: "Probiotic", Category: "gut", Price: decimal.NewFromInt(600),
				StockQuantity: 3, Status: db_models.ProductStatusAvailable,
			}).Error; err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		db.Model(&db_models.Product{}).Where("product_name = ?", "Probiotic").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		err := tm.RunInTransaction(ctx, func(outer context.Context) error {
			return tm.RunInTransaction(outer, func(inner context.Context) error {
				assert.Same(t, DB(outer, db), DB(inner, db))
				return nil
			})
		})
		assert.NoError(t, err)
	})
}

func TestSeedAdmin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := SeedAdmin(ctx, db, "admin", "secret123", "Administrator")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, db, "admin", "other", "Administrator")
	require.NoError(t, err)
	assert.False(t, created)

	var admin db_models.Admin
	require.NoError(t, db.First(&admin, "account = ?", "admin").Error)
	assert.True(t, admin.IsActive)
	assert.NoError(t, utils.ComparePasswords(admin.PasswordHash, "secret123"))

	_, err = SeedAdmin(ctx, db, "admin", "", "x")
	assert.Error(t, err)
}
