package db_models

import "gorm.io/datatypes"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPaused    = "paused"
	SubscriptionStatusCancelled = "cancelled"
)

// MemberSubscription is a member's enrollment in a SubscriptionPlan.
// At most one active or paused row may exist per (member, plan).
type MemberSubscription struct {
	BaseModel
	MemberID           uint   `gorm:"index:idx_sub_member_plan;not null"`
	PlanID             uint   `gorm:"index:idx_sub_member_plan;not null"`
	Quantity           int    `gorm:"not null"`
	RecipientName      string `gorm:"size:100;not null"`
	RecipientPhone     string `gorm:"size:20;not null"`
	RecipientAddress   string `gorm:"size:255;not null"`
	PaymentMethod      string `gorm:"size:20;not null"`
	SubscriptionStatus string `gorm:"size:20;index;not null"`
	StartDate          datatypes.Date
	NextDeliveryDate   datatypes.Date
	EndDate            *datatypes.Date

	Plan *SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
