package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type IPlanRepository interface {
	GetPlanById(ctx context.Context, planID uint) (*db_models.SubscriptionPlan, error)
	GetPlansByProduct(ctx context.Context, productID uint) ([]db_models.SubscriptionPlan, error)
	ReplacePlans(ctx context.Context, productID uint, plans []db_models.SubscriptionPlan) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

// GetPlanById loads the plan together with its product.
func (p PlanRepository) GetPlanById(ctx context.Context, planID uint) (*db_models.SubscriptionPlan, error) {
	var plan db_models.SubscriptionPlan
	err := infra.DB(ctx, p.db).Preload("Product").First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p PlanRepository) GetPlansByProduct(ctx context.Context, productID uint) ([]db_models.SubscriptionPlan, error) {
	var plans []db_models.SubscriptionPlan
	err := infra.DB(ctx, p.db).
		Where("product_id = ?", productID).
		Order("cycle_days ASC").Order("id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// ReplacePlans deletes every plan of the product and inserts the given ones.
func (p PlanRepository) ReplacePlans(ctx context.Context, productID uint, plans []db_models.SubscriptionPlan) error {
	db := infra.DB(ctx, p.db)
	if err := db.Where("product_id = ?", productID).Delete(&db_models.SubscriptionPlan{}).Error; err != nil {
		return err
	}
	if len(plans) == 0 {
		return nil
	}
	for i := range plans {
		plans[i].ID = 0
		plans[i].ProductID = productID
	}
	return db.Omit(clause.Associations).Create(&plans).Error
}
