package services

import (
	"context"
	"time"

	"github.com/samber/lo"

	"purelife/internal/models/db_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

var (
	orderStatuses = []string{
		db_models.OrderStatusPending,
		db_models.OrderStatusProcessing,
		db_models.OrderStatusShipped,
		db_models.OrderStatusCompleted,
		db_models.OrderStatusCancelled,
	}
	paymentStatuses = []string{
		db_models.PaymentStatusUnpaid,
		db_models.PaymentStatusPaid,
		db_models.PaymentStatusRefunded,
	}
)

type AdminServiceInterface interface {
	ListMembers(ctx context.Context) ([]response_models.MemberResponse, error)
	SetMemberActive(ctx context.Context, memberID uint, active bool) error
	ListOrders(ctx context.Context) ([]response_models.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*response_models.OrderResponse, error)
	UpdatePaymentStatus(ctx context.Context, orderID uint, status string) (*response_models.OrderResponse, error)
	ListSubscriptions(ctx context.Context) ([]response_models.SubscriptionResponse, error)
}

type AdminService struct {
	memberRepo repositories.MemberRepository
	orderRepo  repositories.OrderRepository
	subRepo    repositories.SubscriptionRepository
	now        func() time.Time
}

func NewAdminService(
	memberRepo repositories.MemberRepository,
	orderRepo repositories.OrderRepository,
	subRepo repositories.SubscriptionRepository,
) AdminServiceInterface {
	return &AdminService{
		memberRepo: memberRepo,
		orderRepo:  orderRepo,
		subRepo:    subRepo,
		now:        time.Now,
	}
}

func (a *AdminService) ListMembers(ctx context.Context) ([]response_models.MemberResponse, error) {
	members, err := a.memberRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return lo.Map(members, func(m db_models.Member, _ int) response_models.MemberResponse {
		return *toMemberResponse(&m)
	}), nil
}

// SetMemberActive is the only way a member goes away: rows are never deleted.
func (a *AdminService) SetMemberActive(ctx context.Context, memberID uint, active bool) error {
	found, err := a.memberRepo.SetActive(ctx, memberID, active)
	if err != nil {
		return utils.WrapDB(err)
	}
	if !found {
		return utils.ErrMemberNotFound
	}
	logger.WithComponent("admin").Info("member status changed", "member_id", memberID, "active", active)
	return nil
}

func (a *AdminService) ListOrders(ctx context.Context) ([]response_models.OrderResponse, error) {
	orders, err := a.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toOrderResponses(orders), nil
}

// UpdateOrderStatus stamps the shipping time the first time an order ships.
func (a *AdminService) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*response_models.OrderResponse, error) {
	if !lo.Contains(orderStatuses, status) {
		return nil, utils.ErrInvalidStatus.Withf("status: must be one of %v", orderStatuses)
	}

	order, err := a.orderRepo.FindById(ctx, orderID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}

	fields := map[string]interface{}{"order_status": status}
	order.OrderStatus = status
	if status == db_models.OrderStatusShipped && order.ShippingTime == nil {
		shippedAt := a.now().Unix()
		fields["shipping_time"] = shippedAt
		order.ShippingTime = &shippedAt
	}

	if _, err := a.orderRepo.UpdateFields(ctx, orderID, fields); err != nil {
		return nil, utils.WrapDB(err)
	}
	logger.WithComponent("admin").Info("order status changed", "order_id", orderID, "status", status)
	return toOrderResponse(order), nil
}

func (a *AdminService) UpdatePaymentStatus(ctx context.Context, orderID uint, status string) (*response_models.OrderResponse, error) {
	if !lo.Contains(paymentStatuses, status) {
		return nil, utils.ErrInvalidStatus.Withf("status: must be one of %v", paymentStatuses)
	}

	order, err := a.orderRepo.FindById(ctx, orderID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}

	if _, err := a.orderRepo.UpdateFields(ctx, orderID, map[string]interface{}{"payment_status": status}); err != nil {
		return nil, utils.WrapDB(err)
	}
	order.PaymentStatus = status
	logger.WithComponent("admin").Info("payment status changed", "order_id", orderID, "status", status)
	return toOrderResponse(order), nil
}

func (a *AdminService) ListSubscriptions(ctx context.Context) ([]response_models.SubscriptionResponse, error) {
	subs, err := a.subRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toSubscriptionResponses(subs), nil
}
