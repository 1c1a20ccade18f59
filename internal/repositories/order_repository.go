package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type OrderRepository interface {
	// Create inserts the order and its Items.
	Create(ctx context.Context, order *db_models.Order) error
	ListByMember(ctx context.Context, memberID uint) ([]db_models.Order, error)
	FindByIdAndMember(ctx context.Context, id, memberID uint) (*db_models.Order, error)
	FindById(ctx context.Context, id uint) (*db_models.Order, error)
	ListAll(ctx context.Context) ([]db_models.Order, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *db_models.Order) error {
	return infra.DB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) withItems(ctx context.Context) *gorm.DB {
	return infra.DB(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product")
}

func (r *orderRepository) ListByMember(ctx context.Context, memberID uint) ([]db_models.Order, error) {
	var orders []db_models.Order
	err := r.withItems(ctx).
		Where("member_id = ?", memberID).
		Order("order_time DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByIdAndMember returns nil for orders owned by someone else.
func (r *orderRepository) FindByIdAndMember(ctx context.Context, id, memberID uint) (*db_models.Order, error) {
	var order db_models.Order
	err := r.withItems(ctx).
		Where("id = ? AND member_id = ?", id, memberID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindById(ctx context.Context, id uint) (*db_models.Order, error) {
	var order db_models.Order
	err := r.withItems(ctx).First(&order, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]db_models.Order, error) {
	var orders []db_models.Order
	err := r.withItems(ctx).
		Order("order_time DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	res := infra.DB(ctx, r.db).Model(&db_models.Order{BaseModel: db_models.BaseModel{ID: id}}).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
