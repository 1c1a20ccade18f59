package response_models

import "github.com/shopspring/decimal"

// DashboardRange is an inclusive range of store-local calendar days.
type DashboardRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DashboardKPIs struct {
	TotalMembers          int64            `json:"totalMembers"`
	NewMembers            int64            `json:"newMembers"`
	OrderCount            int64            `json:"orderCount"`
	PaidOrderCount        int64            `json:"paidOrderCount"`
	PaidRevenue           decimal.Decimal  `json:"paidRevenue"`
	AverageOrderValue     decimal.Decimal  `json:"averageOrderValue"`
	OrdersByStatus        map[string]int64 `json:"ordersByStatus"`
	SubscriptionsByStatus map[string]int64 `json:"subscriptionsByStatus"`
}

type RevenuePoint struct {
	Date   string          `json:"date"`
	Orders int64           `json:"orders"`
	Amount decimal.Decimal `json:"amount"`
}

type TopProduct struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
}

type RecentOrder struct {
	OrderID       uint            `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	MemberEmail   string          `json:"memberEmail"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	OrderStatus   string          `json:"orderStatus"`
	PaymentStatus string          `json:"paymentStatus"`
	OrderTime     string          `json:"orderTime"`
}

type DashboardReport struct {
	Range        DashboardRange `json:"range"`
	KPIs         DashboardKPIs  `json:"kpis"`
	Revenue      []RevenuePoint `json:"revenue"`
	TopProducts  []TopProduct   `json:"topProducts"`
	RecentOrders []RecentOrder  `json:"recentOrders"`
}
