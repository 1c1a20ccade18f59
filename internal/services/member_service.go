package services

import (
	"context"
	"strings"

	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/utils"
)

type MemberServiceInterface interface {
	GetProfile(ctx context.Context, memberID uint) (*response_models.MemberResponse, error)
	UpdateProfile(ctx context.Context, memberID uint, request request_models.UpdateMemberRequest) (*response_models.MemberResponse, error)
	ChangePassword(ctx context.Context, memberID uint, request request_models.ChangePasswordRequest) error
}

type MemberService struct {
	memberRepo repositories.MemberRepository
}

func NewMemberService(memberRepo repositories.MemberRepository) MemberServiceInterface {
	return &MemberService{memberRepo: memberRepo}
}

func (m *MemberService) GetProfile(ctx context.Context, memberID uint) (*response_models.MemberResponse, error) {
	member, err := m.memberRepo.FindById(ctx, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if member == nil {
		return nil, utils.ErrMemberNotFound
	}
	return toMemberResponse(member), nil
}

// UpdateProfile replaces the name and, when given, the phone number.
func (m *MemberService) UpdateProfile(ctx context.Context, memberID uint, request request_models.UpdateMemberRequest) (*response_models.MemberResponse, error) {
	member, err := m.memberRepo.FindById(ctx, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if member == nil {
		return nil, utils.ErrMemberNotFound
	}

	member.Name = strings.TrimSpace(request.Name)
	if request.Phone != nil && *request.Phone != "" {
		member.Phone = request.Phone
	}

	if err := m.memberRepo.UpdateProfile(ctx, member.ID, member.Name, member.Phone); err != nil {
		return nil, utils.WrapDB(err)
	}
	return toMemberResponse(member), nil
}

func (m *MemberService) ChangePassword(ctx context.Context, memberID uint, request request_models.ChangePasswordRequest) error {
	if request.NewPassword != request.ConfirmPassword {
		return utils.ErrPasswordMismatch
	}

	member, err := m.memberRepo.FindById(ctx, memberID)
	if err != nil {
		return utils.WrapDB(err)
	}
	if member == nil {
		return utils.ErrMemberNotFound
	}
	if err := utils.ComparePasswords(member.PasswordHash, request.CurrentPassword); err != nil {
		return utils.ErrWrongPassword
	}

	hash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	return utils.WrapDB(m.memberRepo.UpdatePassword(ctx, member.ID, hash))
}
