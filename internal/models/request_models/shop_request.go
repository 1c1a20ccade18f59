package request_models

type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Recipient is the shipping and payment part shared by orders and subscriptions.
type Recipient struct {
	RecipientName    string `json:"recipientName" binding:"required,max=100"`
	RecipientPhone   string `json:"recipientPhone" binding:"required,tw_mobile"`
	RecipientAddress string `json:"recipientAddress" binding:"required,max=255"`
	PaymentMethod    string `json:"paymentMethod" binding:"required,oneof=credit_card atm cvs"`
}

type CreateOrderRequest struct {
	Recipient
}

type CreateSubscriptionRequest struct {
	PlanID   uint `json:"planId" binding:"required"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1"`
	Recipient
}
