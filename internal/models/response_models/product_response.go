package response_models

import "github.com/shopspring/decimal"

type ProductResponse struct {
	ProductID         uint                       `json:"productId"`
	Category          string                     `json:"category"`
	ProductName       string                     `json:"productName"`
	Description       string                     `json:"description"`
	Price             decimal.Decimal            `json:"price"`
	PromotionPrice    decimal.NullDecimal        `json:"promotionPrice"`
	ActualPrice       decimal.Decimal            `json:"actualPrice"`
	StockQuantity     int                        `json:"stockQuantity"`
	ProductStatus     string                     `json:"productStatus"`
	ImageURL          *string                    `json:"imageUrl"`
	SalesCount        int                        `json:"salesCount"`
	SubscriptionPlans []SubscriptionPlanResponse `json:"subscriptionPlans,omitempty"`
}

type SubscriptionPlanResponse struct {
	PlanID            uint                `json:"planId"`
	ProductID         uint                `json:"productId"`
	ProductName       string              `json:"productName,omitempty"`
	CycleType         string              `json:"cycleType"`
	CycleDays         int                 `json:"cycleDays"`
	DiscountRate      decimal.NullDecimal `json:"discountRate"`
	CycleText         string              `json:"cycleText"`
	OriginalPrice     decimal.Decimal     `json:"originalPrice"`
	SubscriptionPrice decimal.Decimal     `json:"subscriptionPrice"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
