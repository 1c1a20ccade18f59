package product_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"purelife/internal/config"
	"purelife/internal/repositories"
	"purelife/internal/services"
)

var Module = fx.Provide(
	provideProductRepo,
	providePlanRepo,
	provideProductService,
)

func provideProductRepo(db *gorm.DB) repositories.ProductRepository {
	return repositories.NewProductRepository(db)
}

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideProductService(
	tx services.TxRunner,
	productRepo repositories.ProductRepository,
	planRepo repositories.IPlanRepository,
	storage services.FileStorage,
	shop config.ShopConfig,
) services.ProductServiceInterface {
	return services.NewProductService(tx, productRepo, planRepo, storage, services.ListingLimits{
		New: shop.NewProductsLimit,
		Hot: shop.HotProductsLimit,
	})
}
