package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type SubscriptionRepository interface {
	Insert(ctx context.Context, sub *db_models.MemberSubscription) error
	FindByIdAndMember(ctx context.Context, id, memberID uint) (*db_models.MemberSubscription, error)
	HasOpenSubscription(ctx context.Context, memberID, planID uint) (bool, error)
	ListByMember(ctx context.Context, memberID uint, statuses ...string) ([]db_models.MemberSubscription, error)
	ListAll(ctx context.Context) ([]db_models.MemberSubscription, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Insert(ctx context.Context, sub *db_models.MemberSubscription) error {
	return infra.DB(ctx, r.db).Omit(clause.Associations).Create(sub).Error
}

func (r *subscriptionRepository) FindByIdAndMember(ctx context.Context, id, memberID uint) (*db_models.MemberSubscription, error) {
	var sub db_models.MemberSubscription
	err := infra.DB(ctx, r.db).
		Preload("Plan.Product").
		Where("id = ? AND member_id = ?", id, memberID).
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

// HasOpenSubscription reports whether an active or paused enrollment exists.
func (r *subscriptionRepository) HasOpenSubscription(ctx context.Context, memberID, planID uint) (bool, error) {
	var count int64
	err := infra.DB(ctx, r.db).Model(&db_models.MemberSubscription{}).
		Where("member_id = ? AND plan_id = ? AND subscription_status IN ?", memberID, planID,
			[]string{db_models.SubscriptionStatusActive, db_models.SubscriptionStatusPaused}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByMember returns newest first; no statuses means all of them.
func (r *subscriptionRepository) ListByMember(ctx context.Context, memberID uint, statuses ...string) ([]db_models.MemberSubscription, error) {
	var subs []db_models.MemberSubscription
	q := infra.DB(ctx, r.db).Preload("Plan.Product").Where("member_id = ?", memberID)
	if len(statuses) > 0 {
		q = q.Where("subscription_status IN ?", statuses)
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) ListAll(ctx context.Context) ([]db_models.MemberSubscription, error) {
	var subs []db_models.MemberSubscription
	err := infra.DB(ctx, r.db).
		Preload("Plan.Product").
		Order("created_at DESC").Order("id DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return infra.DB(ctx, r.db).Model(&db_models.MemberSubscription{BaseModel: db_models.BaseModel{ID: id}}).
		Updates(fields).Error
}
