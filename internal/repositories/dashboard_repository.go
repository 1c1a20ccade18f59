package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountMembers(ctx context.Context) (int64, error)
	CountNewMembers(ctx context.Context, start, end time.Time) (int64, error)
	CountOrdersByStatus(ctx context.Context) ([]StatusCount, error)
	CountSubscriptionsByStatus(ctx context.Context) ([]StatusCount, error)

	// Orders placed in [start, end), oldest first, without items.
	OrdersBetween(ctx context.Context, start, end time.Time) ([]OrderSummaryRow, error)

	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesRow, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrderRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

type OrderSummaryRow struct {
	ID            uint            `gorm:"column:id"`
	OrderTime     int64           `gorm:"column:order_time"`
	OrderStatus   string          `gorm:"column:order_status"`
	PaymentStatus string          `gorm:"column:payment_status"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount"`
	ShippingFee   decimal.Decimal `gorm:"column:shipping_fee"`
}

type ProductSalesRow struct {
	ProductID   uint   `gorm:"column:product_id"`
	ProductName string `gorm:"column:product_name"`
	Quantity    int64  `gorm:"column:quantity"`
}

type RecentOrderRow struct {
	OrderID       uint            `gorm:"column:order_id"`
	OrderNumber   string          `gorm:"column:order_number"`
	OrderStatus   string          `gorm:"column:order_status"`
	PaymentStatus string          `gorm:"column:payment_status"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount"`
	ShippingFee   decimal.Decimal `gorm:"column:shipping_fee"`
	OrderTime     int64           `gorm:"column:order_time"`
	MemberEmail   string          `gorm:"column:member_email"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	err := infra.DB(ctx, r.db).Model(&db_models.Member{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewMembers(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := infra.DB(ctx, r.db).
		Model(&db_models.Member{}).
		Where("created_at >= ? AND created_at < ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountOrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := infra.DB(ctx, r.db).
		Model(&db_models.Order{}).
		Select("order_status AS status, COUNT(*) AS count").
		Group("order_status").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountSubscriptionsByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := infra.DB(ctx, r.db).
		Model(&db_models.MemberSubscription{}).
		Select("subscription_status AS status, COUNT(*) AS count").
		Group("subscription_status").
		Scan(&rows).Error
	return rows, err
}

// ---------- Orders ----------
func (r *dashboardRepository) OrdersBetween(ctx context.Context, start, end time.Time) ([]OrderSummaryRow, error) {
	var rows []OrderSummaryRow
	err := infra.DB(ctx, r.db).
		Model(&db_models.Order{}).
		Select("id, order_time, order_status, payment_status, total_amount, shipping_fee").
		Where("order_time >= ? AND order_time < ?", start.Unix(), end.Unix()).
		Order("order_time ASC").Order("id ASC").
		Scan(&rows).Error
	return rows, err
}

// ---------- Top products ----------
func (r *dashboardRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesRow, error) {
	var rows []ProductSalesRow
	err := infra.DB(ctx, r.db).
		Table("order_items oi").
		Select("oi.product_id, p.product_name, SUM(oi.quantity) AS quantity").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("o.order_time >= ? AND o.order_time < ?", start.Unix(), end.Unix()).
		Where("o.order_status <> ?", db_models.OrderStatusCancelled).
		Group("oi.product_id, p.product_name").
		Order("quantity DESC").Order("oi.product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ---------- Recent orders ----------
func (r *dashboardRepository) RecentOrders(ctx context.Context, limit int) ([]RecentOrderRow, error) {
	var rows []RecentOrderRow
	err := infra.DB(ctx, r.db).
		Table("orders o").
		Select(`
			o.id AS order_id,
			o.order_number,
			o.order_status,
			o.payment_status,
			o.total_amount,
			o.shipping_fee,
			o.order_time,
			COALESCE(m.email, '') AS member_email`).
		Joins("LEFT JOIN members m ON m.id = o.member_id").
		Order("o.order_time DESC").Order("o.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
