package request_models

import (
	"encoding/json"
	"strings"
)

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateMemberStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ProductForm is the multipart body of product create and update. The image
// file itself is read separately from the "file" part.
type ProductForm struct {
	ProductName       string `form:"productName" binding:"required,max=200"`
	Category          string `form:"category" binding:"required,max=50"`
	Price             string `form:"price" binding:"required,numeric"`
	PromotionPrice    string `form:"promotionPrice" binding:"omitempty,numeric"`
	StockQuantity     *int   `form:"stockQuantity" binding:"required,gte=0"`
	Description       string `form:"description" binding:"required"`
	ProductStatus     string `form:"productStatus" binding:"required,oneof=available unavailable"`
	ImageURL          string `form:"imageUrl"`
	SubscriptionPlans string `form:"subscriptionPlans"`
}

// PlanRequest is one entry of subscriptionPlans. Plans are replaced as a
// whole, so an incoming planId is not read and every entry gets a new id.
type PlanRequest struct {
	CycleType    string   `json:"cycleType"`
	CycleDays    int      `json:"cycleDays"`
	DiscountRate *float64 `json:"discountRate"`
}

// Plans decodes the subscriptionPlans part. provided is false when the part
// is absent, which leaves existing plans untouched on update.
func (f ProductForm) Plans() (plans []PlanRequest, provided bool, err error) {
	raw := strings.TrimSpace(f.SubscriptionPlans)
	if raw == "" {
		return nil, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &plans); err != nil {
		return nil, true, err
	}
	return plans, true, nil
}

// DashboardQuery takes yyyy-MM-dd store-local dates; both ends are inclusive.
type DashboardQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}
