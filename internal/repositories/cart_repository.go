package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type CartRepository interface {
	ListByMember(ctx context.Context, memberID uint) ([]db_models.CartItem, error)
	FindById(ctx context.Context, id uint) (*db_models.CartItem, error)
	FindByMemberAndProduct(ctx context.Context, memberID, productID uint) (*db_models.CartItem, error)
	AddQuantity(ctx context.Context, memberID, productID uint, quantity int) (*db_models.CartItem, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
	Delete(ctx context.Context, id uint) error
	DeleteByMember(ctx context.Context, memberID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// ListByMember joins the current product row onto every line, oldest line first.
func (r *cartRepository) ListByMember(ctx context.Context, memberID uint) ([]db_models.CartItem, error) {
	var items []db_models.CartItem
	err := infra.DB(ctx, r.db).
		Preload("Product").
		Where("member_id = ?", memberID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindById(ctx context.Context, id uint) (*db_models.CartItem, error) {
	var item db_models.CartItem
	err := infra.DB(ctx, r.db).First(&item, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

func (r *cartRepository) FindByMemberAndProduct(ctx context.Context, memberID, productID uint) (*db_models.CartItem, error) {
	var item db_models.CartItem
	err := infra.DB(ctx, r.db).
		Where("member_id = ? AND product_id = ?", memberID, productID).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

// AddQuantity inserts the line or adds quantity onto the existing one in a
// single statement, and returns the stored line.
func (r *cartRepository) AddQuantity(ctx context.Context, memberID, productID uint, quantity int) (*db_models.CartItem, error) {
	item := &db_models.CartItem{MemberID: memberID, ProductID: productID, Quantity: quantity}
	err := infra.DB(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("carts.quantity + excluded.quantity"),
				"updated_at": time.Now().Unix(),
			}),
		}).
		Create(item).Error
	if err != nil {
		return nil, err
	}
	return r.FindByMemberAndProduct(ctx, memberID, productID)
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	return infra.DB(ctx, r.db).Model(&db_models.CartItem{BaseModel: db_models.BaseModel{ID: id}}).
		Update("quantity", quantity).Error
}

func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	return infra.DB(ctx, r.db).Delete(&db_models.CartItem{}, id).Error
}

func (r *cartRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return infra.DB(ctx, r.db).Where("member_id = ?", memberID).Delete(&db_models.CartItem{}).Error
}
