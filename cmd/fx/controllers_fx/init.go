package controllers_fx

import (
	"go.uber.org/fx"

	"purelife/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewMemberController),
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewAdminProductController),
	fx.Provide(controllers.NewCartController),
	fx.Provide(controllers.NewOrderController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewHealthController),
)
