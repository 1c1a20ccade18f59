package db_models

// CartItem is one (member, product) line; re-adding a product bumps Quantity.
type CartItem struct {
	BaseModel
	MemberID  uint `gorm:"uniqueIndex:idx_cart_member_product;not null"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_member_product;not null"`
	Quantity  int  `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (CartItem) TableName() string { return "carts" }
