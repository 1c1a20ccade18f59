package services

import (
	"context"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, memberID uint, request request_models.CreateOrderRequest) (*response_models.OrderResponse, error)
	GetOrders(ctx context.Context, memberID uint) ([]response_models.OrderResponse, error)
	GetOrderDetail(ctx context.Context, memberID, orderID uint) (*response_models.OrderResponse, error)
}

type OrderService struct {
	tx          TxRunner
	cartRepo    repositories.CartRepository
	orderRepo   repositories.OrderRepository
	assembler   *OrderAssembler
	orderPrefix string
}

func NewOrderService(
	tx TxRunner,
	cartRepo repositories.CartRepository,
	orderRepo repositories.OrderRepository,
	assembler *OrderAssembler,
	orderPrefix string,
) OrderServiceInterface {
	return &OrderService{
		tx:          tx,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		assembler:   assembler,
		orderPrefix: orderPrefix,
	}
}

// CreateOrder checks out the member's cart. The order, its items, the stock
// reservation and the cart clear commit together or not at all.
func (s *OrderService) CreateOrder(ctx context.Context, memberID uint, request request_models.CreateOrderRequest) (*response_models.OrderResponse, error) {
	var orderID uint

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		items, err := s.cartRepo.ListByMember(ctx, memberID)
		if err != nil {
			return utils.WrapDB(err)
		}
		if len(items) == 0 {
			return utils.ErrCartEmpty
		}

		lines := make([]orderLine, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				return utils.ErrProductNotFound
			}
			if item.Product.Status == db_models.ProductStatusDeleted {
				return utils.ErrProductUnavailable.Withf("%s is no longer available, remove it from the cart", item.Product.Name)
			}
			lines = append(lines, orderLine{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   EffectivePrice(item.Product),
			})
		}

		order, err := s.assembler.Place(ctx, placeOrderInput{
			MemberID:     memberID,
			Recipient:    request.Recipient,
			Lines:        lines,
			NumberPrefix: s.orderPrefix,
		})
		if err != nil {
			return err
		}

		if err := s.cartRepo.DeleteByMember(ctx, memberID); err != nil {
			return utils.WrapDB(err)
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByIdAndMember(ctx, orderID, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}

	logger.WithComponent("order").Info("order created",
		"order_number", order.OrderNumber,
		"member_id", memberID,
		"items", len(order.Items),
		"grand_total", order.GrandTotal().String())
	return toOrderResponse(order), nil
}

func (s *OrderService) GetOrders(ctx context.Context, memberID uint) ([]response_models.OrderResponse, error) {
	orders, err := s.orderRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toOrderResponses(orders), nil
}

// GetOrderDetail reports another member's order as not found.
func (s *OrderService) GetOrderDetail(ctx context.Context, memberID, orderID uint) (*response_models.OrderResponse, error) {
	order, err := s.orderRepo.FindByIdAndMember(ctx, orderID, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}
