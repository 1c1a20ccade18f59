package db_models

import "github.com/shopspring/decimal"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"

	PaymentMethodCreditCard = "credit_card"
	PaymentMethodATM        = "atm"
	PaymentMethodCVS        = "cvs"
)

// Order is a purchase snapshot. The grand total is never stored; it is
// TotalAmount + ShippingFee.
type Order struct {
	BaseModel
	MemberID         uint            `gorm:"index;not null"`
	OrderNumber      string          `gorm:"size:40;uniqueIndex;not null"`
	OrderStatus      string          `gorm:"size:20;index;not null"`
	PaymentStatus    string          `gorm:"size:20;not null"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingFee      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RecipientName    string          `gorm:"size:100;not null"`
	RecipientPhone   string          `gorm:"size:20;not null"`
	RecipientAddress string          `gorm:"size:255;not null"`
	PaymentMethod    string          `gorm:"size:20;not null"`
	OrderTime        int64           `gorm:"index;not null"`
	ShippingTime     *int64

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (o *Order) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.ShippingFee)
}

// OrderItem copies the unit price at purchase time.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	SpecInfo  string          `gorm:"size:200"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
