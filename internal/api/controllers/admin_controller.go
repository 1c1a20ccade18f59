package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

type AdminController struct {
	adminService services.AdminServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface) *AdminController {
	return &AdminController{adminService: adminService}
}

func (a *AdminController) ListMembers(c *gin.Context) {
	members, err := a.adminService.ListMembers(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, members, "Members fetched successfully")
}

// UpdateMemberStatus godoc
// @Summary Activate or deactivate a member
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body request_models.UpdateMemberStatusRequest true "New state"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/admin/members/{id}/status [put]
func (a *AdminController) UpdateMemberStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateMemberStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.adminService.SetMemberActive(c.Request.Context(), id, *req.IsActive); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member status updated successfully")
}

func (a *AdminController) ListOrders(c *gin.Context) {
	orders, err := a.adminService.ListOrders(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, orders, "Orders fetched successfully")
}

func (a *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	order, err := a.adminService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order status updated successfully")
}

func (a *AdminController) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	order, err := a.adminService.UpdatePaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Payment status updated successfully")
}

func (a *AdminController) ListSubscriptions(c *gin.Context) {
	subs, err := a.adminService.ListSubscriptions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subs, "Subscriptions fetched successfully")
}
