package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Store dashboard: member and order KPIs, daily revenue, top products
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param start query string false "First day (yyyy-MM-dd), default 29 days before end"
// @Param end query string false "Last day (yyyy-MM-dd), default today"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/admin/dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	var query request_models.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	report, err := d.dashboardService.BuildDashboard(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}
