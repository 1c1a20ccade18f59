package controllers

import (
	"github.com/gin-gonic/gin"

	"purelife/internal/models/request_models"
	"purelife/internal/services"
	"purelife/pkg/utils"
)

type MemberController struct {
	memberService services.MemberServiceInterface
}

func NewMemberController(memberService services.MemberServiceInterface) *MemberController {
	return &MemberController{memberService: memberService}
}

func (m *MemberController) GetProfile(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	profile, err := m.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile fetched successfully")
}

func (m *MemberController) UpdateProfile(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	profile, err := m.memberService.UpdateProfile(c.Request.Context(), memberID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile updated successfully")
}

func (m *MemberController) ChangePassword(c *gin.Context) {
	memberID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := m.memberService.ChangePassword(c.Request.Context(), memberID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password changed successfully")
}
