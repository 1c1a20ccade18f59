package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"purelife/internal/infra"
	"purelife/internal/models/request_models"
	"purelife/internal/repositories"
	"purelife/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	db       *gorm.DB
	products repositories.ProductRepository
	plans    repositories.IPlanRepository
	carts    repositories.CartRepository
	orders   repositories.OrderRepository
	subs     repositories.SubscriptionRepository
	members  repositories.MemberRepository

	cartSvc  CartServiceInterface
	orderSvc OrderServiceInterface
	subSvc   *SubscriptionService
}

func newTestEnv(t *testing.T) *testEnv {
	db := testutil.NewTestDB(t)
	tx := infra.NewTransactionManager(db)

	env := &testEnv{
		db:       db,
		products: repositories.NewProductRepository(db),
		plans:    repositories.NewPlanRepository(db),
		carts:    repositories.NewCartRepository(db),
		orders:   repositories.NewOrderRepository(db),
		subs:     repositories.NewSubscriptionRepository(db),
		members:  repositories.NewMemberRepository(db),
	}

	shipping := NewShippingPolicy(1200, 60)
	assembler := NewOrderAssembler(env.orders, env.products, shipping)
	assembler.now = func() time.Time { return fixedNow }

	env.cartSvc = NewCartService(env.carts, env.products, shipping)
	env.orderSvc = NewOrderService(tx, env.carts, env.orders, assembler, "PL")
	env.subSvc = NewSubscriptionService(tx, env.plans, env.products, env.subs, env.orders, assembler, "SUB").(*SubscriptionService)
	env.subSvc.now = func() time.Time { return fixedNow }

	return env
}

func recipient() request_models.Recipient {
	return request_models.Recipient{
		RecipientName:    "Lin Mei",
		RecipientPhone:   "0912345678",
		RecipientAddress: "No. 1, Section 5, Xinyi Rd, Taipei",
		PaymentMethod:    "credit_card",
	}
}
