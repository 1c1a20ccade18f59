package db_models

import "github.com/shopspring/decimal"

const (
	ProductStatusAvailable   = "available"
	ProductStatusUnavailable = "unavailable"
	ProductStatusDeleted     = "deleted"
)

type Product struct {
	BaseModel
	Name           string              `gorm:"column:product_name;size:200;not null"`
	Category       string              `gorm:"size:50;index;not null"`
	Description    string              `gorm:"type:text"`
	Price          decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	PromotionPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	StockQuantity  int                 `gorm:"not null"`
	Status         string              `gorm:"column:product_status;size:20;index;not null"`
	ImageURL       *string             `gorm:"size:500"`
	SalesCount     int                 `gorm:"not null"`

	SubscriptionPlans []SubscriptionPlan `gorm:"foreignKey:ProductID"`
}

const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleBiannual  = "biannual"
)

// SubscriptionPlan is a recurring delivery option for one product.
// DiscountRate is a multiplier, e.g. 0.9 for 10% off.
type SubscriptionPlan struct {
	BaseModel
	ProductID    uint                `gorm:"index;not null"`
	CycleType    string              `gorm:"size:20;not null"`
	CycleDays    int                 `gorm:"not null"`
	DiscountRate decimal.NullDecimal `gorm:"type:numeric(5,4)"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
