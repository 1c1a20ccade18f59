package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/repositories"
	"purelife/internal/testutil"
	"purelife/pkg/utils"
)

func newDashboardService(env *testEnv) *DashboardService {
	svc := NewDashboardService(repositories.NewDashboardRepository(env.db)).(*DashboardService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func buy(t *testing.T, env *testEnv, memberID, productID uint, qty int) *db_models.Order {
	t.Helper()
	_, err := env.cartSvc.AddToCart(context.Background(), memberID, request_models.AddToCartRequest{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	order, err := checkout(t, env, memberID)
	require.NoError(t, err)
	return order
}

func TestDashboardService_BuildDashboard(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(env)
	svc := newDashboardService(env)
	ctx := context.Background()

	recent := testutil.CreateMember(t, env.db, "recent@example.com")
	old := testutil.CreateMember(t, env.db, "old@example.com")
	require.NoError(t, env.db.Model(&db_models.Member{}).Where("id = ?", recent.ID).
		UpdateColumn("created_at", fixedNow.AddDate(0, 0, -2).Unix()).Error)
	require.NoError(t, env.db.Model(&db_models.Member{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix()).Error)

	ginseng := testutil.CreateProduct(t, env.db, "Ginseng", 1500, 5)
	zinc := testutil.CreateProduct(t, env.db, "Zinc", 500, 5)

	paid := buy(t, env, recent.ID, ginseng.ID, 1)
	_, err := admin.UpdatePaymentStatus(ctx, paid.ID, db_models.PaymentStatusPaid)
	require.NoError(t, err)
	buy(t, env, recent.ID, zinc.ID, 2)
	cancelled := buy(t, env, old.ID, ginseng.ID, 1)
	_, err = admin.UpdateOrderStatus(ctx, cancelled.ID, db_models.OrderStatusCancelled)
	require.NoError(t, err)

	report, err := svc.BuildDashboard(ctx, request_models.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-14", report.Range.Start)
	assert.Equal(t, "2026-03-15", report.Range.End)

	kpis := report.KPIs
	assert.Equal(t, int64(2), kpis.TotalMembers)
	assert.Equal(t, int64(1), kpis.NewMembers)
	assert.Equal(t, int64(2), kpis.OrderCount)
	assert.Equal(t, int64(1), kpis.PaidOrderCount)
	assert.True(t, decimal.NewFromInt(1500).Equal(kpis.PaidRevenue), kpis.PaidRevenue.String())
	assert.True(t, decimal.NewFromInt(1500).Equal(kpis.AverageOrderValue), kpis.AverageOrderValue.String())
	assert.Equal(t, int64(2), kpis.OrdersByStatus[db_models.OrderStatusPending])
	assert.Equal(t, int64(1), kpis.OrdersByStatus[db_models.OrderStatusCancelled])
	assert.Equal(t, int64(0), kpis.OrdersByStatus[db_models.OrderStatusShipped])
	assert.Equal(t, int64(0), kpis.SubscriptionsByStatus[db_models.SubscriptionStatusActive])

	require.Len(t, report.Revenue, 30)
	assert.Equal(t, "2026-02-14", report.Revenue[0].Date)
	last := report.Revenue[29]
	assert.Equal(t, "2026-03-15", last.Date)
	assert.Equal(t, int64(2), last.Orders)
	assert.True(t, decimal.NewFromInt(1500).Equal(last.Amount), last.Amount.String())
	assert.True(t, report.Revenue[0].Amount.IsZero())

	require.Len(t, report.TopProducts, 2)
	assert.Equal(t, zinc.ID, report.TopProducts[0].ProductID)
	assert.Equal(t, int64(2), report.TopProducts[0].Quantity)
	assert.Equal(t, "Ginseng", report.TopProducts[1].ProductName)
	assert.Equal(t, int64(1), report.TopProducts[1].Quantity)

	require.Len(t, report.RecentOrders, 3)
	assert.Equal(t, cancelled.ID, report.RecentOrders[0].OrderID)
	assert.Equal(t, "old@example.com", report.RecentOrders[0].MemberEmail)
	assert.True(t, decimal.NewFromInt(1500).Equal(report.RecentOrders[0].GrandTotal))
}

func TestDashboardService_Range(t *testing.T) {
	env := newTestEnv(t)
	svc := newDashboardService(env)
	ctx := context.Background()

	report, err := svc.BuildDashboard(ctx, request_models.DashboardQuery{Start: "2026-03-20", End: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", report.Range.Start)
	assert.Equal(t, "2026-03-20", report.Range.End)
	assert.Len(t, report.Revenue, 11)
	assert.Empty(t, report.TopProducts)
	assert.True(t, report.KPIs.AverageOrderValue.IsZero())

	report, err = svc.BuildDashboard(ctx, request_models.DashboardQuery{Start: "2025-03-15", End: "2026-03-15"})
	require.NoError(t, err)
	assert.Len(t, report.Revenue, 366)

	_, err = svc.BuildDashboard(ctx, request_models.DashboardQuery{Start: "2025-03-14", End: "2026-03-15"})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.BuildDashboard(ctx, request_models.DashboardQuery{End: "15/03/2026"})
	assert.ErrorIs(t, err, utils.ErrValidation)
}
