package services

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/utils"
)

const (
	dashboardDefaultDays = 30
	dashboardMaxDays     = 366
	dashboardTopProducts = 5
	dashboardRecentLimit = 10
)

var subscriptionStatuses = []string{
	db_models.SubscriptionStatusActive,
	db_models.SubscriptionStatusPaused,
	db_models.SubscriptionStatusCancelled,
}

type DashboardServiceInterface interface {
	BuildDashboard(ctx context.Context, query request_models.DashboardQuery) (*response_models.DashboardReport, error)
}

type DashboardService struct {
	repo repositories.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardServiceInterface {
	return &DashboardService{repo: repo, now: time.Now}
}

// normalizeRange resolves the query to [start, end) in store time. Missing
// ends default to the last 30 days including today; inverted ends are swapped.
func (s *DashboardService) normalizeRange(query request_models.DashboardQuery) (time.Time, time.Time, error) {
	loc := utils.StoreLocation()

	end := utils.StartOfDay(s.now())
	if query.End != "" {
		parsed, err := time.ParseInLocation(dateLayout, query.End, loc)
		if err != nil {
			return time.Time{}, time.Time{}, utils.NewValidationError("end: must be a yyyy-MM-dd date")
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -(dashboardDefaultDays - 1))
	if query.Start != "" {
		parsed, err := time.ParseInLocation(dateLayout, query.Start, loc)
		if err != nil {
			return time.Time{}, time.Time{}, utils.NewValidationError("start: must be a yyyy-MM-dd date")
		}
		start = parsed
	}

	if start.After(end) {
		start, end = end, start
	}
	end = end.AddDate(0, 0, 1)
	if start.AddDate(0, 0, dashboardMaxDays).Before(end) {
		return time.Time{}, time.Time{}, utils.NewValidationError("range: must not exceed %d days", dashboardMaxDays)
	}
	return start, end, nil
}

func statusMap(statuses []string, rows []repositories.StatusCount) map[string]int64 {
	out := lo.Associate(statuses, func(s string) (string, int64) { return s, 0 })
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out
}

func (s *DashboardService) BuildDashboard(ctx context.Context, query request_models.DashboardQuery) (*response_models.DashboardReport, error) {
	start, end, err := s.normalizeRange(query)
	if err != nil {
		return nil, err
	}

	// ---------- Core counts ----------
	totalMembers, err := s.repo.CountMembers(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	newMembers, err := s.repo.CountNewMembers(ctx, start, end)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	orderRows, err := s.repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	subRows, err := s.repo.CountSubscriptionsByStatus(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}

	// ---------- Revenue series ----------
	orders, err := s.repo.OrdersBetween(ctx, start, end)
	if err != nil {
		return nil, utils.WrapDB(err)
	}

	var points []response_models.RevenuePoint
	index := map[string]int{}
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		index[key] = len(points)
		points = append(points, response_models.RevenuePoint{Date: key, Amount: decimal.Zero})
	}

	var orderCount, paidCount int64
	paidRevenue := decimal.Zero
	for _, o := range orders {
		if o.OrderStatus == db_models.OrderStatusCancelled {
			continue
		}
		i, ok := index[utils.FromUnixSeconds(o.OrderTime).Format(dateLayout)]
		if !ok {
			continue
		}
		orderCount++
		points[i].Orders++
		if o.PaymentStatus == db_models.PaymentStatusPaid {
			total := o.TotalAmount.Add(o.ShippingFee)
			paidCount++
			paidRevenue = paidRevenue.Add(total)
			points[i].Amount = points[i].Amount.Add(total)
		}
	}

	aov := decimal.Zero
	if paidCount > 0 {
		aov = paidRevenue.Div(decimal.NewFromInt(paidCount)).Round(2)
	}

	// ---------- Top products ----------
	topRows, err := s.repo.TopProducts(ctx, start, end, dashboardTopProducts)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	top := lo.Map(topRows, func(r repositories.ProductSalesRow, _ int) response_models.TopProduct {
		return response_models.TopProduct{ProductID: r.ProductID, ProductName: r.ProductName, Quantity: r.Quantity}
	})

	// ---------- Recent orders ----------
	recentRows, err := s.repo.RecentOrders(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	recent := lo.Map(recentRows, func(r repositories.RecentOrderRow, _ int) response_models.RecentOrder {
		return response_models.RecentOrder{
			OrderID:       r.OrderID,
			OrderNumber:   r.OrderNumber,
			MemberEmail:   r.MemberEmail,
			GrandTotal:    r.TotalAmount.Add(r.ShippingFee),
			OrderStatus:   r.OrderStatus,
			PaymentStatus: r.PaymentStatus,
			OrderTime:     utils.FormatRFC3339(utils.FromUnixSeconds(r.OrderTime)),
		}
	})

	return &response_models.DashboardReport{
		Range: response_models.DashboardRange{
			Start: start.Format(dateLayout),
			End:   end.AddDate(0, 0, -1).Format(dateLayout),
		},
		KPIs: response_models.DashboardKPIs{
			TotalMembers:          totalMembers,
			NewMembers:            newMembers,
			OrderCount:            orderCount,
			PaidOrderCount:        paidCount,
			PaidRevenue:           paidRevenue,
			AverageOrderValue:     aov,
			OrdersByStatus:        statusMap(orderStatuses, orderRows),
			SubscriptionsByStatus: statusMap(subscriptionStatuses, subRows),
		},
		Revenue:      points,
		TopProducts:  top,
		RecentOrders: recent,
	}, nil
}
