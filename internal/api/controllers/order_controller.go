package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
}

func NewOrderController(orderService services.OrderServiceInterface) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder godoc
// @Summary Check out the cart
// @Description Turns the whole cart into a pending, unpaid order and empties the cart
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateOrderRequest true "Recipient and payment method"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/orders [post]
func (o *OrderController) CreateOrder(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	order, err := o.orderService.CreateOrder(c.Request.Context(), memberID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order created successfully")
}

func (o *OrderController) GetOrders(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	orders, err := o.orderService.GetOrders(c.Request.Context(), memberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, orders, "Orders fetched successfully")
}

func (o *OrderController) GetOrderDetail(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "orderId")
	if !ok {
		return
	}

	order, err := o.orderService.GetOrderDetail(c.Request.Context(), memberID, orderID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order fetched successfully")
}
