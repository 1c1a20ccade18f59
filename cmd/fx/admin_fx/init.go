package admin_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"purelife/internal/repositories"
	"purelife/internal/services"
)

var Module = fx.Provide(
	provideAdminService,
	provideDashboardRepository,
	provideDashboardService,
)

func provideAdminService(
	memberRepo repositories.MemberRepository,
	orderRepo repositories.OrderRepository,
	subRepo repositories.SubscriptionRepository,
) services.AdminServiceInterface {
	return services.NewAdminService(memberRepo, orderRepo, subRepo)
}

func provideDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(repo repositories.DashboardRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(repo)
}
