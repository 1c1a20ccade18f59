package response_models

import "github.com/shopspring/decimal"

type CartItemResponse struct {
	CartID         uint                `json:"cartId"`
	ProductID      uint                `json:"productId"`
	ProductName    string              `json:"productName"`
	Category       string              `json:"category"`
	Price          decimal.Decimal     `json:"price"`
	PromotionPrice decimal.NullDecimal `json:"promotionPrice"`
	ActualPrice    decimal.Decimal     `json:"actualPrice"`
	Quantity       int                 `json:"quantity"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	ProductStatus  string              `json:"productStatus"`
	StockQuantity  int                 `json:"stockQuantity"`
	ImageURL       *string             `json:"imageUrl"`
	AddedTime      string              `json:"addedTime"`
}

type CartTotalResponse struct {
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

type OrderResponse struct {
	OrderID          uint                `json:"orderId"`
	MemberID         uint                `json:"memberId"`
	OrderNumber      string              `json:"orderNumber"`
	OrderStatus      string              `json:"orderStatus"`
	PaymentStatus    string              `json:"paymentStatus"`
	TotalAmount      decimal.Decimal     `json:"totalAmount"`
	ShippingFee      decimal.Decimal     `json:"shippingFee"`
	GrandTotal       decimal.Decimal     `json:"grandTotal"`
	RecipientName    string              `json:"recipientName"`
	RecipientPhone   string              `json:"recipientPhone"`
	RecipientAddress string              `json:"recipientAddress"`
	PaymentMethod    string              `json:"paymentMethod"`
	OrderTime        string              `json:"orderTime"`
	ShippingTime     string              `json:"shippingTime,omitempty"`
	Items            []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	SpecInfo    string          `json:"specInfo"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SubscriptionResponse struct {
	SubscriptionID     uint                `json:"subscriptionId"`
	MemberID           uint                `json:"memberId"`
	PlanID             uint                `json:"planId"`
	SubscriptionStatus string              `json:"subscriptionStatus"`
	Quantity           int                 `json:"quantity"`
	StartDate          string              `json:"startDate"`
	NextDeliveryDate   string              `json:"nextDeliveryDate"`
	EndDate            string              `json:"endDate,omitempty"`
	CreatedAt          string              `json:"createdAt"`
	RecipientName      string              `json:"recipientName"`
	RecipientPhone     string              `json:"recipientPhone"`
	RecipientAddress   string              `json:"recipientAddress"`
	PaymentMethod      string              `json:"paymentMethod"`
	CycleType          string              `json:"cycleType"`
	CycleDays          int                 `json:"cycleDays"`
	CycleText          string              `json:"cycleText"`
	DiscountRate       decimal.NullDecimal `json:"discountRate"`
	ProductID          uint                `json:"productId"`
	ProductName        string              `json:"productName"`
	Category           string              `json:"category"`
	OriginalPrice      decimal.Decimal     `json:"originalPrice"`
	SubscriptionPrice  decimal.Decimal     `json:"subscriptionPrice"`
	FirstOrder         *OrderResponse      `json:"firstOrder,omitempty"`
}
