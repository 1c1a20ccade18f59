package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *db_models.Product) error
	Save(ctx context.Context, product *db_models.Product) error
	FindById(ctx context.Context, id uint) (*db_models.Product, error)
	ListAvailable(ctx context.Context, category string) ([]db_models.Product, error)
	ListNotDeleted(ctx context.Context) ([]db_models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListNewest(ctx context.Context, limit int) ([]db_models.Product, error)
	ListBestSelling(ctx context.Context, limit int) ([]db_models.Product, error)
	UpdateStatus(ctx context.Context, id uint, status string) (bool, error)
	ReserveStock(ctx context.Context, id uint, quantity int) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (p *productRepository) Create(ctx context.Context, product *db_models.Product) error {
	return infra.DB(ctx, p.db).Omit(clause.Associations).Create(product).Error
}

func (p *productRepository) Save(ctx context.Context, product *db_models.Product) error {
	return infra.DB(ctx, p.db).Omit(clause.Associations).Save(product).Error
}

func (p *productRepository) FindById(ctx context.Context, id uint) (*db_models.Product, error) {
	var product db_models.Product
	err := infra.DB(ctx, p.db).First(&product, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}

// ListAvailable returns available products ordered by id; an empty category means all.
func (p *productRepository) ListAvailable(ctx context.Context, category string) ([]db_models.Product, error) {
	var products []db_models.Product
	q := infra.DB(ctx, p.db).Where("product_status = ?", db_models.ProductStatusAvailable)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) ListNotDeleted(ctx context.Context) ([]db_models.Product, error) {
	var products []db_models.Product
	err := infra.DB(ctx, p.db).
		Where("product_status <> ?", db_models.ProductStatusDeleted).
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := infra.DB(ctx, p.db).Model(&db_models.Product{}).
		Where("product_status = ?", db_models.ProductStatusAvailable).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (p *productRepository) ListNewest(ctx context.Context, limit int) ([]db_models.Product, error) {
	var products []db_models.Product
	err := infra.DB(ctx, p.db).
		Where("product_status = ?", db_models.ProductStatusAvailable).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) ListBestSelling(ctx context.Context, limit int) ([]db_models.Product, error) {
	var products []db_models.Product
	err := infra.DB(ctx, p.db).
		Where("product_status = ?", db_models.ProductStatusAvailable).
		Order("sales_count DESC").Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) UpdateStatus(ctx context.Context, id uint, status string) (bool, error) {
	res := infra.DB(ctx, p.db).Model(&db_models.Product{BaseModel: db_models.BaseModel{ID: id}}).
		Update("product_status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReserveStock decrements stock and bumps the sales counter in one
// conditional update. It reports false when stock is short.
func (p *productRepository) ReserveStock(ctx context.Context, id uint, quantity int) (bool, error) {
	res := infra.DB(ctx, p.db).Model(&db_models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		UpdateColumns(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"sales_count":    gorm.Expr("sales_count + ?", quantity),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
