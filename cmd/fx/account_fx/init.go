package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"purelife/internal/config"
	"purelife/internal/repositories"
	"purelife/internal/services"
	mem "purelife/pkg/memcache"
	"purelife/pkg/utils"
)

var Module = fx.Provide(
	provideMemberRepo,
	provideAdminRepo,
	provideTokenManager,
	provideAccountService,
	provideMemberService,
)

func provideMemberRepo(db *gorm.DB) repositories.MemberRepository {
	return repositories.NewMemberRepository(db)
}

func provideAdminRepo(db *gorm.DB) repositories.AdminRepository {
	return repositories.NewAdminRepository(db)
}

func provideTokenManager(cfg config.AuthConfig) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
}

func provideAccountService(
	memberRepo repositories.MemberRepository,
	adminRepo repositories.AdminRepository,
	tokens *utils.TokenManager,
	revoked mem.RevokedTokenStore,
) services.AccountServiceInterface {
	return services.NewAccountService(memberRepo, adminRepo, tokens, revoked)
}

func provideMemberService(memberRepo repositories.MemberRepository) services.MemberServiceInterface {
	return services.NewMemberService(memberRepo)
}
