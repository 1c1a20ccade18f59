package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

const firstShipmentSpec = "First subscription shipment"

type SubscriptionServiceInterface interface {
	GetPlansByProduct(ctx context.Context, productID uint) ([]response_models.SubscriptionPlanResponse, error)
	GetPlanById(ctx context.Context, planID uint) (*response_models.SubscriptionPlanResponse, error)
	CreateSubscription(ctx context.Context, memberID uint, request request_models.CreateSubscriptionRequest) (*response_models.SubscriptionResponse, error)
	GetMySubscriptions(ctx context.Context, memberID uint) ([]response_models.SubscriptionResponse, error)
	Pause(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error)
	Resume(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error)
	Cancel(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error)
}

// SubscriptionService drives the active -> paused -> cancelled lifecycle.
// Only the first order is generated, synchronously at creation; later
// deliveries are not scheduled.
type SubscriptionService struct {
	tx          TxRunner
	planRepo    repositories.IPlanRepository
	productRepo repositories.ProductRepository
	subRepo     repositories.SubscriptionRepository
	orderRepo   repositories.OrderRepository
	assembler   *OrderAssembler
	orderPrefix string
	now         func() time.Time
}

func NewSubscriptionService(
	tx TxRunner,
	planRepo repositories.IPlanRepository,
	productRepo repositories.ProductRepository,
	subRepo repositories.SubscriptionRepository,
	orderRepo repositories.OrderRepository,
	assembler *OrderAssembler,
	orderPrefix string,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		tx:          tx,
		planRepo:    planRepo,
		productRepo: productRepo,
		subRepo:     subRepo,
		orderRepo:   orderRepo,
		assembler:   assembler,
		orderPrefix: orderPrefix,
		now:         time.Now,
	}
}

func (s *SubscriptionService) GetPlansByProduct(ctx context.Context, productID uint) ([]response_models.SubscriptionPlanResponse, error) {
	product, err := s.productRepo.FindById(ctx, productID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if product == nil || product.Status == db_models.ProductStatusDeleted {
		return nil, utils.ErrProductNotFound
	}

	plans, err := s.planRepo.GetPlansByProduct(ctx, productID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return lo.Map(plans, func(plan db_models.SubscriptionPlan, _ int) response_models.SubscriptionPlanResponse {
		return toPlanResponse(&plan, product)
	}), nil
}

func (s *SubscriptionService) GetPlanById(ctx context.Context, planID uint) (*response_models.SubscriptionPlanResponse, error) {
	plan, err := s.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	resp := toPlanResponse(plan, plan.Product)
	return &resp, nil
}

// CreateSubscription enrolls the member and places the first order at the
// subscription price with shipping waived, in one transaction.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, memberID uint, request request_models.CreateSubscriptionRequest) (*response_models.SubscriptionResponse, error) {
	quantity := request.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var subID, orderID uint
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		plan, err := s.planRepo.GetPlanById(ctx, request.PlanID)
		if err != nil {
			return utils.WrapDB(err)
		}
		if plan == nil {
			return utils.ErrPlanNotFound
		}
		product := plan.Product
		if product == nil || product.Status == db_models.ProductStatusDeleted {
			return utils.ErrProductNotFound
		}
		if product.Status != db_models.ProductStatusAvailable {
			return utils.ErrProductUnavailable
		}

		open, err := s.subRepo.HasOpenSubscription(ctx, memberID, plan.ID)
		if err != nil {
			return utils.WrapDB(err)
		}
		if open {
			return utils.ErrAlreadySubscribed
		}

		today := calendarDate(s.now())
		sub := &db_models.MemberSubscription{
			MemberID:           memberID,
			PlanID:             plan.ID,
			Quantity:           quantity,
			RecipientName:      request.RecipientName,
			RecipientPhone:     request.RecipientPhone,
			RecipientAddress:   request.RecipientAddress,
			PaymentMethod:      request.PaymentMethod,
			SubscriptionStatus: db_models.SubscriptionStatusActive,
			StartDate:          today,
			NextDeliveryDate:   addDays(today, plan.CycleDays),
		}
		if err := s.subRepo.Insert(ctx, sub); err != nil {
			return utils.WrapDB(err)
		}

		order, err := s.assembler.Place(ctx, placeOrderInput{
			MemberID:  memberID,
			Recipient: request.Recipient,
			Lines: []orderLine{{
				ProductID:   product.ID,
				ProductName: product.Name,
				SpecInfo:    firstShipmentSpec,
				Quantity:    quantity,
				UnitPrice:   SubscriptionPrice(EffectivePrice(product), plan.DiscountRate),
			}},
			NumberPrefix:  s.orderPrefix,
			WaiveShipping: true,
		})
		if err != nil {
			return err
		}

		subID, orderID = sub.ID, order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.FindByIdAndMember(ctx, subID, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}
	order, err := s.orderRepo.FindByIdAndMember(ctx, orderID, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}

	resp := toSubscriptionResponse(sub)
	if order != nil {
		resp.FirstOrder = toOrderResponse(order)
	}

	logger.WithComponent("subscription").Info("subscription created",
		"subscription_id", sub.ID,
		"member_id", memberID,
		"plan_id", sub.PlanID,
		"first_order", resp.FirstOrder != nil)
	return resp, nil
}

// GetMySubscriptions lists active and paused enrollments, newest first.
func (s *SubscriptionService) GetMySubscriptions(ctx context.Context, memberID uint) ([]response_models.SubscriptionResponse, error) {
	subs, err := s.subRepo.ListByMember(ctx, memberID,
		db_models.SubscriptionStatusActive, db_models.SubscriptionStatusPaused)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toSubscriptionResponses(subs), nil
}

func (s *SubscriptionService) Pause(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error) {
	return s.transition(ctx, memberID, subscriptionID, func(sub *db_models.MemberSubscription) (map[string]interface{}, error) {
		if sub.SubscriptionStatus != db_models.SubscriptionStatusActive {
			return nil, utils.ErrInvalidState.Withf("Only active subscriptions can be paused")
		}
		sub.SubscriptionStatus = db_models.SubscriptionStatusPaused
		return map[string]interface{}{"subscription_status": sub.SubscriptionStatus}, nil
	})
}

// Resume restarts the delivery clock from today instead of keeping the
// days that were left when the subscription was paused.
func (s *SubscriptionService) Resume(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error) {
	return s.transition(ctx, memberID, subscriptionID, func(sub *db_models.MemberSubscription) (map[string]interface{}, error) {
		if sub.SubscriptionStatus != db_models.SubscriptionStatusPaused {
			return nil, utils.ErrInvalidState.Withf("Only paused subscriptions can be resumed")
		}
		// plans replaced by a product edit leave the subscription without one
		if sub.Plan == nil {
			return nil, utils.ErrPlanNotFound
		}
		sub.SubscriptionStatus = db_models.SubscriptionStatusActive
		sub.NextDeliveryDate = addDays(calendarDate(s.now()), sub.Plan.CycleDays)
		return map[string]interface{}{
			"subscription_status": sub.SubscriptionStatus,
			"next_delivery_date":  sub.NextDeliveryDate,
		}, nil
	})
}

func (s *SubscriptionService) Cancel(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error) {
	return s.transition(ctx, memberID, subscriptionID, func(sub *db_models.MemberSubscription) (map[string]interface{}, error) {
		if sub.SubscriptionStatus == db_models.SubscriptionStatusCancelled {
			return nil, utils.ErrInvalidState.Withf("Subscription is already cancelled")
		}
		today := calendarDate(s.now())
		sub.SubscriptionStatus = db_models.SubscriptionStatusCancelled
		sub.EndDate = &today
		return map[string]interface{}{
			"subscription_status": sub.SubscriptionStatus,
			"end_date":            today,
		}, nil
	})
}

// transition loads the member's own subscription, applies change and saves
// the returned columns. Someone else's subscription reads as not found.
func (s *SubscriptionService) transition(
	ctx context.Context,
	memberID, subscriptionID uint,
	change func(sub *db_models.MemberSubscription) (map[string]interface{}, error),
) (*response_models.SubscriptionResponse, error) {
	sub, err := s.subRepo.FindByIdAndMember(ctx, subscriptionID, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}

	fields, err := change(sub)
	if err != nil {
		return nil, err
	}
	if err := s.subRepo.UpdateFields(ctx, sub.ID, fields); err != nil {
		return nil, utils.WrapDB(err)
	}

	logger.WithComponent("subscription").Info("subscription status changed",
		"subscription_id", sub.ID,
		"member_id", memberID,
		"status", sub.SubscriptionStatus)
	return toSubscriptionResponse(sub), nil
}

func addDays(d datatypes.Date, days int) datatypes.Date {
	return datatypes.Date(time.Time(d).AddDate(0, 0, days))
}
