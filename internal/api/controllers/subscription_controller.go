package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

func (s *SubscriptionController) GetPlansByProduct(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	plans, err := s.subscriptionService.GetPlansByProduct(c.Request.Context(), productID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

func (s *SubscriptionController) GetPlanById(c *gin.Context) {
	planID, ok := parseID(c, "planId")
	if !ok {
		return
	}

	plan, err := s.subscriptionService.GetPlanById(c.Request.Context(), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// CreateSubscription godoc
// @Summary Subscribe to a plan
// @Description Starts an active subscription and places its first order at the subscription price, shipping free
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateSubscriptionRequest true "Plan, quantity and recipient"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/subscriptions [post]
func (s *SubscriptionController) CreateSubscription(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	sub, err := s.subscriptionService.CreateSubscription(c.Request.Context(), memberID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "Subscription created successfully")
}

func (s *SubscriptionController) GetMySubscriptions(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	subs, err := s.subscriptionService.GetMySubscriptions(c.Request.Context(), memberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subs, "Subscriptions fetched successfully")
}

type subscriptionAction func(ctx context.Context, memberID, subscriptionID uint) (*response_models.SubscriptionResponse, error)

func (s *SubscriptionController) change(c *gin.Context, action subscriptionAction, message string) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	subID, ok := parseID(c, "id")
	if !ok {
		return
	}

	sub, err := action(c.Request.Context(), memberID, subID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, message)
}

func (s *SubscriptionController) Pause(c *gin.Context) {
	s.change(c, s.subscriptionService.Pause, "Subscription paused")
}

func (s *SubscriptionController) Resume(c *gin.Context) {
	s.change(c, s.subscriptionService.Resume, "Subscription resumed")
}

func (s *SubscriptionController) Cancel(c *gin.Context) {
	s.change(c, s.subscriptionService.Cancel, "Subscription cancelled")
}
