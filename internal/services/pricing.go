package services

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"purelife/internal/models/db_models"
)

// EffectivePrice is the promotion price when it is set and positive,
// otherwise the list price.
func EffectivePrice(p *db_models.Product) decimal.Decimal {
	if p.PromotionPrice.Valid && p.PromotionPrice.Decimal.IsPositive() {
		return p.PromotionPrice.Decimal
	}
	return p.Price
}

// SubscriptionPrice applies the plan's discount multiplier and floors to
// whole currency units. A missing rate leaves the base price unchanged.
func SubscriptionPrice(base decimal.Decimal, rate decimal.NullDecimal) decimal.Decimal {
	if !rate.Valid {
		return base
	}
	return base.Mul(rate.Decimal).Floor()
}

// ShippingPolicy waives the flat fee at or above the threshold.
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	Fee           decimal.Decimal
}

func NewShippingPolicy(threshold, fee int64) ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: decimal.NewFromInt(threshold),
		Fee:           decimal.NewFromInt(fee),
	}
}

func (s ShippingPolicy) ShippingFee(total decimal.Decimal) decimal.Decimal {
	if total.GreaterThanOrEqual(s.FreeThreshold) {
		return decimal.Zero
	}
	return s.Fee
}

// CartTotal sums effective price times quantity over the lines.
func CartTotal(items []db_models.CartItem) decimal.Decimal {
	return lo.Reduce(items, func(sum decimal.Decimal, item db_models.CartItem, _ int) decimal.Decimal {
		if item.Product == nil {
			return sum
		}
		return sum.Add(EffectivePrice(item.Product).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}, decimal.Zero)
}

func cycleText(cycleType string) string {
	switch cycleType {
	case db_models.CycleMonthly:
		return "Monthly delivery"
	case db_models.CycleQuarterly:
		return "Delivery every 3 months"
	case db_models.CycleBiannual:
		return "Delivery every 6 months"
	default:
		return cycleType
	}
}
