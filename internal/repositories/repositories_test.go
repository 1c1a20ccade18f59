package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
	"purelife/internal/testutil"
)

var testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func TestProductRepository_ReserveStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	product := testutil.CreateProduct(t, db, "Vitamin C", 100, 3)

	ok, err := repo.ReserveStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "only one left")

	ok, err = repo.ReserveStock(ctx, product.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindById(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.StockQuantity)
	assert.Equal(t, 3, stored.SalesCount)
}

func TestProductRepository_Listings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	testutil.CreateProduct(t, db, "A", 100, 1, testutil.WithCategory("b-cat"), testutil.WithSales(2))
	testutil.CreateProduct(t, db, "B", 100, 1, testutil.WithCategory("a-cat"), testutil.WithSales(7))
	testutil.CreateProduct(t, db, "C", 100, 1, testutil.WithCategory("a-cat"), testutil.WithSales(7))
	testutil.CreateProduct(t, db, "D", 100, 1, testutil.WithCategory("z-cat"), testutil.WithStatus(db_models.ProductStatusUnavailable))

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-cat", "b-cat"}, categories)

	best, err := repo.ListBestSelling(ctx, 2)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, "B", best[0].Name, "ties go to the older product")
	assert.Equal(t, "C", best[1].Name)

	newest, err := repo.ListNewest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "C", newest[0].Name)

	missing, err := repo.FindById(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlanRepository_ReplacePlans(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()
	product := testutil.CreateProduct(t, db, "Fish Oil", 1000, 5)
	old := testutil.CreatePlan(t, db, product.ID, db_models.CycleMonthly, 30, "0.9")

	err := repo.ReplacePlans(ctx, product.ID, []db_models.SubscriptionPlan{
		{CycleType: db_models.CycleBiannual, CycleDays: 180, DiscountRate: decimal.NewNullDecimal(decimal.RequireFromString("0.8"))},
		{CycleType: db_models.CycleQuarterly, CycleDays: 90},
	})
	require.NoError(t, err)

	plans, err := repo.GetPlansByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, 90, plans[0].CycleDays)
	assert.Equal(t, 180, plans[1].CycleDays)

	gone, err := repo.GetPlanById(ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	withProduct, err := repo.GetPlanById(ctx, plans[0].ID)
	require.NoError(t, err)
	require.NotNil(t, withProduct.Product)
	assert.Equal(t, "Fish Oil", withProduct.Product.Name)

	require.NoError(t, repo.ReplacePlans(ctx, product.ID, nil))
	plans, err = repo.GetPlansByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestCartRepository_OneLinePerProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	member := testutil.CreateMember(t, db, "cart@example.com")
	product := testutil.CreateProduct(t, db, "Zinc", 300, 5)

	first, err := repo.AddQuantity(ctx, member.ID, product.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Quantity)

	second, err := repo.AddQuantity(ctx, member.ID, product.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	err = db.Create(&db_models.CartItem{MemberID: member.ID, ProductID: product.ID, Quantity: 2}).Error
	assert.Error(t, err, "unique (member, product)")

	item, err := repo.FindByMemberAndProduct(ctx, member.ID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.NoError(t, repo.UpdateQuantity(ctx, item.ID, 4))

	items, err := repo.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Zinc", items[0].Product.Name)

	require.NoError(t, repo.DeleteByMember(ctx, member.ID))
	items, err = repo.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	owner := testutil.CreateMember(t, db, "owner@example.com")
	other := testutil.CreateMember(t, db, "other@example.com")
	product := testutil.CreateProduct(t, db, "Calcium", 400, 5)

	order := &db_models.Order{
		MemberID:      owner.ID,
		OrderNumber:   "PL20260315ABCDEF",
		OrderStatus:   db_models.OrderStatusPending,
		PaymentStatus: db_models.PaymentStatusUnpaid,
		TotalAmount:   decimal.NewFromInt(800),
		ShippingFee:   decimal.NewFromInt(60),
		PaymentMethod: db_models.PaymentMethodATM,
		OrderTime:     1773570600,
		Items: []db_models.OrderItem{
			{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(400), Subtotal: decimal.NewFromInt(800)},
		},
	}
	require.NoError(t, repo.Create(ctx, order))
	require.NotZero(t, order.Items[0].OrderID)

	found, err := repo.FindByIdAndMember(ctx, order.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Calcium", found.Items[0].Product.Name)
	assert.True(t, found.GrandTotal().Equal(decimal.NewFromInt(860)))

	hidden, err := repo.FindByIdAndMember(ctx, order.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	dup := *order
	dup.ID = 0
	dup.Items = nil
	assert.Error(t, repo.Create(ctx, &dup), "order numbers are unique")

	updated, err := repo.UpdateFields(ctx, order.ID, map[string]interface{}{"payment_status": db_models.PaymentStatusPaid})
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestSubscriptionRepository_HasOpenSubscription(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	member := testutil.CreateMember(t, db, "sub@example.com")
	product := testutil.CreateProduct(t, db, "Collagen", 800, 5)
	plan := testutil.CreatePlan(t, db, product.ID, db_models.CycleMonthly, 30, "0.9")

	open, err := repo.HasOpenSubscription(ctx, member.ID, plan.ID)
	require.NoError(t, err)
	assert.False(t, open)

	sub := &db_models.MemberSubscription{
		MemberID:           member.ID,
		PlanID:             plan.ID,
		Quantity:           1,
		RecipientName:      "Lin",
		RecipientPhone:     "0912345678",
		RecipientAddress:   "Taipei",
		PaymentMethod:      db_models.PaymentMethodCVS,
		SubscriptionStatus: db_models.SubscriptionStatusPaused,
		StartDate:          datatypes.Date(testDate),
		NextDeliveryDate:   datatypes.Date(testDate.AddDate(0, 0, 30)),
	}
	require.NoError(t, repo.Insert(ctx, sub))

	open, err = repo.HasOpenSubscription(ctx, member.ID, plan.ID)
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, repo.UpdateFields(ctx, sub.ID, map[string]interface{}{"subscription_status": db_models.SubscriptionStatusCancelled}))
	open, err = repo.HasOpenSubscription(ctx, member.ID, plan.ID)
	require.NoError(t, err)
	assert.False(t, open)

	active, err := repo.ListByMember(ctx, member.ID, db_models.SubscriptionStatusActive, db_models.SubscriptionStatusPaused)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.ListByMember(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Plan)
	require.NotNil(t, all[0].Plan.Product)
	assert.Equal(t, "Collagen", all[0].Plan.Product.Name)
}

func TestRepositoriesJoinTransactions(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	tm := infra.NewTransactionManager(db)
	product := testutil.CreateProduct(t, db, "Iron", 100, 5)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		ok, err := repo.ReserveStock(ctx, product.ID, 5)
		require.NoError(t, err)
		require.True(t, ok)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	stored, err := repo.FindById(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity, "rolled back with the transaction")
}

func TestDashboardRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	orders := NewOrderRepository(db)
	repo := NewDashboardRepository(db)
	ctx := context.Background()
	buyer := testutil.CreateMember(t, db, "buyer@example.com")
	product := testutil.CreateProduct(t, db, "Iron", 300, 10)

	place := func(number, status string, at time.Time, qty int) {
		amount := decimal.NewFromInt(int64(300 * qty))
		require.NoError(t, orders.Create(ctx, &db_models.Order{
			MemberID:      buyer.ID,
			OrderNumber:   number,
			OrderStatus:   status,
			PaymentStatus: db_models.PaymentStatusUnpaid,
			TotalAmount:   amount,
			ShippingFee:   decimal.NewFromInt(60),
			PaymentMethod: db_models.PaymentMethodCVS,
			OrderTime:     at.Unix(),
			Items: []db_models.OrderItem{
				{ProductID: product.ID, Quantity: qty, UnitPrice: decimal.NewFromInt(300), Subtotal: amount},
			},
		}))
	}
	place("PL20260315AAAAAA", db_models.OrderStatusPending, testDate.Add(time.Hour), 1)
	place("PL20260315BBBBBB", db_models.OrderStatusCancelled, testDate.Add(2*time.Hour), 4)
	place("PL20260301CCCCCC", db_models.OrderStatusShipped, testDate.AddDate(0, 0, -14), 2)

	counts, err := repo.CountOrdersByStatus(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []StatusCount{
		{Status: db_models.OrderStatusPending, Count: 1},
		{Status: db_models.OrderStatusCancelled, Count: 1},
		{Status: db_models.OrderStatusShipped, Count: 1},
	}, counts)

	rows, err := repo.OrdersBetween(ctx, testDate, testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, db_models.OrderStatusPending, rows[0].OrderStatus)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.NewFromInt(300)))

	top, err := repo.TopProducts(ctx, testDate.AddDate(0, 0, -30), testDate.AddDate(0, 0, 1), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Iron", top[0].ProductName)
	assert.Equal(t, int64(3), top[0].Quantity)

	recent, err := repo.RecentOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "PL20260315BBBBBB", recent[0].OrderNumber)
	assert.Equal(t, "buyer@example.com", recent[0].MemberEmail)

	total, err := repo.CountMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
