package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/repositories"
	"purelife/pkg/utils"
)

type orderLine struct {
	ProductID   uint
	ProductName string
	SpecInfo    string
	Quantity    int
	UnitPrice   decimal.Decimal
}

func (l orderLine) subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderAssembler turns priced lines into a persisted order. It must be
// called inside a transaction: it writes the order, its items and the stock
// reservation, and any failure has to roll all of them back.
type OrderAssembler struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	shipping    ShippingPolicy
	now         func() time.Time
}

func NewOrderAssembler(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, shipping ShippingPolicy) *OrderAssembler {
	return &OrderAssembler{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shipping:    shipping,
		now:         time.Now,
	}
}

type placeOrderInput struct {
	MemberID      uint
	Recipient     request_models.Recipient
	Lines         []orderLine
	NumberPrefix  string
	WaiveShipping bool
}

func (a *OrderAssembler) Place(ctx context.Context, in placeOrderInput) (*db_models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, utils.ErrCartEmpty
	}

	total := lo.Reduce(in.Lines, func(sum decimal.Decimal, l orderLine, _ int) decimal.Decimal {
		return sum.Add(l.subtotal())
	}, decimal.Zero)

	fee := decimal.Zero
	if !in.WaiveShipping {
		fee = a.shipping.ShippingFee(total)
	}

	now := a.now()
	order := &db_models.Order{
		MemberID:         in.MemberID,
		OrderNumber:      utils.GenerateOrderNumber(in.NumberPrefix, now),
		OrderStatus:      db_models.OrderStatusPending,
		PaymentStatus:    db_models.PaymentStatusUnpaid,
		TotalAmount:      total,
		ShippingFee:      fee,
		RecipientName:    in.Recipient.RecipientName,
		RecipientPhone:   in.Recipient.RecipientPhone,
		RecipientAddress: in.Recipient.RecipientAddress,
		PaymentMethod:    in.Recipient.PaymentMethod,
		OrderTime:        now.Unix(),
		Items: lo.Map(in.Lines, func(l orderLine, _ int) db_models.OrderItem {
			return db_models.OrderItem{
				ProductID: l.ProductID,
				SpecInfo:  l.SpecInfo,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Subtotal:  l.subtotal(),
			}
		}),
	}

	if err := a.orderRepo.Create(ctx, order); err != nil {
		return nil, utils.WrapDB(err)
	}

	for _, l := range in.Lines {
		ok, err := a.productRepo.ReserveStock(ctx, l.ProductID, l.Quantity)
		if err != nil {
			return nil, utils.WrapDB(err)
		}
		if !ok {
			return nil, utils.ErrOutOfStock.Withf("Insufficient stock for %s", l.ProductName)
		}
	}

	return order, nil
}
