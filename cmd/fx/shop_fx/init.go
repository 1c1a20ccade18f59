package shop_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"purelife/internal/config"
	"purelife/internal/repositories"
	"purelife/internal/services"
)

// Module wires the cart, checkout and subscription services, which share
// one shipping policy and one order assembler.
var Module = fx.Provide(
	provideCartRepo,
	provideOrderRepo,
	provideSubscriptionRepo,
	provideShippingPolicy,
	provideOrderAssembler,
	provideCartService,
	provideOrderService,
	provideSubscriptionService,
)

func provideCartRepo(db *gorm.DB) repositories.CartRepository {
	return repositories.NewCartRepository(db)
}

func provideOrderRepo(db *gorm.DB) repositories.OrderRepository {
	return repositories.NewOrderRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideShippingPolicy(shop config.ShopConfig) services.ShippingPolicy {
	return services.NewShippingPolicy(shop.FreeShippingThreshold, shop.ShippingFee)
}

func provideOrderAssembler(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	shipping services.ShippingPolicy,
) *services.OrderAssembler {
	return services.NewOrderAssembler(orderRepo, productRepo, shipping)
}

func provideCartService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	shipping services.ShippingPolicy,
) services.CartServiceInterface {
	return services.NewCartService(cartRepo, productRepo, shipping)
}

func provideOrderService(
	tx services.TxRunner,
	cartRepo repositories.CartRepository,
	orderRepo repositories.OrderRepository,
	assembler *services.OrderAssembler,
	shop config.ShopConfig,
) services.OrderServiceInterface {
	return services.NewOrderService(tx, cartRepo, orderRepo, assembler, shop.OrderPrefix)
}

func provideSubscriptionService(
	tx services.TxRunner,
	planRepo repositories.IPlanRepository,
	productRepo repositories.ProductRepository,
	subRepo repositories.SubscriptionRepository,
	orderRepo repositories.OrderRepository,
	assembler *services.OrderAssembler,
	shop config.ShopConfig,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(tx, planRepo, productRepo, subRepo, orderRepo, assembler, shop.SubscriptionOrderPrefix)
}
