package services

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"purelife/internal/models/db_models"
	"purelife/internal/models/response_models"
	"purelife/pkg/utils"
)

const dateLayout = "2006-01-02"

// calendarDate is the store-local calendar day of t, stored as UTC midnight.
func calendarDate(t time.Time) datatypes.Date {
	y, m, d := t.In(utils.StoreLocation()).Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

func toMemberResponse(m *db_models.Member) *response_models.MemberResponse {
	return &response_models.MemberResponse{
		MemberID:         m.ID,
		Account:          m.Account,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		MemberLevel:      m.Level,
		IsActive:         m.IsActive,
		RegistrationTime: utils.FormatRFC3339(utils.FromUnixSeconds(m.CreatedAt)),
	}
}

func toProductResponse(p *db_models.Product) response_models.ProductResponse {
	resp := response_models.ProductResponse{
		ProductID:      p.ID,
		Category:       p.Category,
		ProductName:    p.Name,
		Description:    p.Description,
		Price:          p.Price,
		PromotionPrice: p.PromotionPrice,
		ActualPrice:    EffectivePrice(p),
		StockQuantity:  p.StockQuantity,
		ProductStatus:  p.Status,
		ImageURL:       p.ImageURL,
		SalesCount:     p.SalesCount,
	}
	if len(p.SubscriptionPlans) > 0 {
		resp.SubscriptionPlans = lo.Map(p.SubscriptionPlans, func(plan db_models.SubscriptionPlan, _ int) response_models.SubscriptionPlanResponse {
			return toPlanResponse(&plan, p)
		})
	}
	return resp
}

func toProductResponses(products []db_models.Product) []response_models.ProductResponse {
	return lo.Map(products, func(p db_models.Product, _ int) response_models.ProductResponse {
		return toProductResponse(&p)
	})
}

func toPlanResponse(plan *db_models.SubscriptionPlan, product *db_models.Product) response_models.SubscriptionPlanResponse {
	resp := response_models.SubscriptionPlanResponse{
		PlanID:       plan.ID,
		ProductID:    plan.ProductID,
		CycleType:    plan.CycleType,
		CycleDays:    plan.CycleDays,
		DiscountRate: plan.DiscountRate,
		CycleText:    cycleText(plan.CycleType),
	}
	if product != nil {
		base := EffectivePrice(product)
		resp.ProductName = product.Name
		resp.OriginalPrice = base
		resp.SubscriptionPrice = SubscriptionPrice(base, plan.DiscountRate)
	}
	return resp
}

func toCartItemResponse(item *db_models.CartItem) response_models.CartItemResponse {
	resp := response_models.CartItemResponse{
		CartID:    item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedTime: utils.FormatRFC3339(utils.FromUnixSeconds(item.CreatedAt)),
	}
	if p := item.Product; p != nil {
		price := EffectivePrice(p)
		resp.ProductName = p.Name
		resp.Category = p.Category
		resp.Price = p.Price
		resp.PromotionPrice = p.PromotionPrice
		resp.ActualPrice = price
		resp.Subtotal = price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.ProductStatus = p.Status
		resp.StockQuantity = p.StockQuantity
		resp.ImageURL = p.ImageURL
	}
	return resp
}

func toOrderResponse(o *db_models.Order) *response_models.OrderResponse {
	resp := &response_models.OrderResponse{
		OrderID:          o.ID,
		MemberID:         o.MemberID,
		OrderNumber:      o.OrderNumber,
		OrderStatus:      o.OrderStatus,
		PaymentStatus:    o.PaymentStatus,
		TotalAmount:      o.TotalAmount,
		ShippingFee:      o.ShippingFee,
		GrandTotal:       o.GrandTotal(),
		RecipientName:    o.RecipientName,
		RecipientPhone:   o.RecipientPhone,
		RecipientAddress: o.RecipientAddress,
		PaymentMethod:    o.PaymentMethod,
		OrderTime:        utils.FormatRFC3339(utils.FromUnixSeconds(o.OrderTime)),
		Items: lo.Map(o.Items, func(item db_models.OrderItem, _ int) response_models.OrderItemResponse {
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			return response_models.OrderItemResponse{
				ProductID:   item.ProductID,
				ProductName: name,
				SpecInfo:    item.SpecInfo,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    item.Subtotal,
			}
		}),
	}
	if o.ShippingTime != nil {
		resp.ShippingTime = utils.FormatRFC3339(utils.FromUnixSeconds(*o.ShippingTime))
	}
	return resp
}

func toOrderResponses(orders []db_models.Order) []response_models.OrderResponse {
	return lo.Map(orders, func(o db_models.Order, _ int) response_models.OrderResponse {
		return *toOrderResponse(&o)
	})
}

func toSubscriptionResponse(s *db_models.MemberSubscription) *response_models.SubscriptionResponse {
	resp := &response_models.SubscriptionResponse{
		SubscriptionID:     s.ID,
		MemberID:           s.MemberID,
		PlanID:             s.PlanID,
		SubscriptionStatus: s.SubscriptionStatus,
		Quantity:           s.Quantity,
		StartDate:          formatDate(s.StartDate),
		NextDeliveryDate:   formatDate(s.NextDeliveryDate),
		CreatedAt:          utils.FormatRFC3339(utils.FromUnixSeconds(s.CreatedAt)),
		RecipientName:      s.RecipientName,
		RecipientPhone:     s.RecipientPhone,
		RecipientAddress:   s.RecipientAddress,
		PaymentMethod:      s.PaymentMethod,
	}
	if s.EndDate != nil {
		resp.EndDate = formatDate(*s.EndDate)
	}
	if plan := s.Plan; plan != nil {
		resp.CycleType = plan.CycleType
		resp.CycleDays = plan.CycleDays
		resp.CycleText = cycleText(plan.CycleType)
		resp.DiscountRate = plan.DiscountRate
		if p := plan.Product; p != nil {
			base := EffectivePrice(p)
			resp.ProductID = p.ID
			resp.ProductName = p.Name
			resp.Category = p.Category
			resp.OriginalPrice = base
			resp.SubscriptionPrice = SubscriptionPrice(base, plan.DiscountRate)
		}
	}
	return resp
}

func toSubscriptionResponses(subs []db_models.MemberSubscription) []response_models.SubscriptionResponse {
	return lo.Map(subs, func(s db_models.MemberSubscription, _ int) response_models.SubscriptionResponse {
		return *toSubscriptionResponse(&s)
	})
}
