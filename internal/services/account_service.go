package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	mem "purelife/pkg/memcache"
	"purelife/pkg/utils"
)

const tokenTypeBearer = "Bearer"

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.MemberResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	AdminLogin(ctx context.Context, request request_models.AdminLoginRequest) (*response_models.AdminLoginResponse, error)
	Logout(token string) error
}

type AccountService struct {
	memberRepo repositories.MemberRepository
	adminRepo  repositories.AdminRepository
	tokens     *utils.TokenManager
	revoked    mem.RevokedTokenStore
}

func NewAccountService(
	memberRepo repositories.MemberRepository,
	adminRepo repositories.AdminRepository,
	tokens *utils.TokenManager,
	revoked mem.RevokedTokenStore,
) AccountServiceInterface {
	return &AccountService{
		memberRepo: memberRepo,
		adminRepo:  adminRepo,
		tokens:     tokens,
		revoked:    revoked,
	}
}

// Register creates an active member whose account name is the email.
func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.MemberResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	existing, err := a.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	phone := request.Phone
	member := &db_models.Member{
		Account:      email,
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(request.Name),
		Phone:        &phone,
		Level:        db_models.MemberLevelGeneral,
		IsActive:     true,
	}
	if err := a.memberRepo.Insert(ctx, member); err != nil {
		// lost a race with another registration for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.WrapDB(err)
	}

	return toMemberResponse(member), nil
}

// Login never tells an unknown email apart from a wrong password.
func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	member, err := a.memberRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if member == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(member.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !member.IsActive {
		return nil, utils.ErrAccountDisabled
	}

	token, expiresAt, err := a.tokens.CreateToken(member.ID, member.Account, utils.RoleMember)
	if err != nil {
		return nil, err
	}

	return &response_models.LoginResponse{
		Token:       token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   utils.FormatRFC3339(expiresAt),
		MemberID:    member.ID,
		Account:     member.Account,
		Name:        member.Name,
		MemberLevel: member.Level,
	}, nil
}

func (a *AccountService) AdminLogin(ctx context.Context, request request_models.AdminLoginRequest) (*response_models.AdminLoginResponse, error) {
	admin, err := a.adminRepo.FindByAccount(ctx, strings.TrimSpace(request.Account))
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if admin == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(admin.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, utils.ErrAccountDisabled
	}

	token, expiresAt, err := a.tokens.CreateToken(admin.ID, admin.Account, utils.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &response_models.AdminLoginResponse{
		Token:     token,
		TokenType: tokenTypeBearer,
		ExpiresAt: utils.FormatRFC3339(expiresAt),
		AdminID:   admin.ID,
		Account:   admin.Account,
		Name:      admin.Name,
		Role:      string(utils.RoleAdmin),
	}, nil
}

// Logout revokes the token until it would expire on its own.
func (a *AccountService) Logout(token string) error {
	claims, ok := a.tokens.ValidateToken(token)
	if !ok || a.revoked.IsRevoked(token) {
		return utils.ErrNotAuthenticated
	}
	if claims.ExpiresAt == nil {
		return errors.New("token without expiry")
	}
	a.revoked.Revoke(token, claims.ExpiresAt.Time)
	return nil
}
