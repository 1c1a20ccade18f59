package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"purelife/internal/api/controllers"
	mem "purelife/pkg/memcache"
	"purelife/pkg/middleware"
	"purelife/pkg/utils"
)

// RouterParams collects everything the HTTP surface needs.
type RouterParams struct {
	fx.In

	Tokens  *utils.TokenManager
	Revoked mem.RevokedTokenStore

	Account      *controllers.AccountController
	Member       *controllers.MemberController
	Product      *controllers.ProductController
	AdminProduct *controllers.AdminProductController
	Cart         *controllers.CartController
	Order        *controllers.OrderController
	Subscription *controllers.SubscriptionController
	Admin        *controllers.AdminController
	Dashboard    *controllers.DashboardController
	Health       *controllers.HealthController
}

type RouterOptions struct {
	AllowedOrigins []string
	UploadDir      string
	UploadPrefix   string
}

func NewRouter(p RouterParams, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	if opts.UploadDir != "" && opts.UploadPrefix != "" {
		r.Static(opts.UploadPrefix, opts.UploadDir)
	}

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	auth := middleware.JWTAuthMiddleware(p.Tokens, p.Revoked)
	memberOnly := middleware.RoleMiddleware(utils.RoleMember)
	adminOnly := middleware.RoleMiddleware(utils.RoleAdmin)

	r.GET("/health", p.Health.Health)

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", p.Account.Register)
	authGroup.POST("/login", p.Account.Login)
	authGroup.POST("/logout", auth, p.Account.Logout)

	memberGroup := apiGroup.Group("/members/me", auth, memberOnly)
	memberGroup.GET("", p.Member.GetProfile)
	memberGroup.PUT("", p.Member.UpdateProfile)
	memberGroup.PUT("/password", p.Member.ChangePassword)

	productGroup := apiGroup.Group("/products")
	productGroup.GET("", p.Product.ListProducts)
	productGroup.GET("/categories", p.Product.ListCategories)
	productGroup.GET("/new", p.Product.ListNewProducts)
	productGroup.GET("/hot", p.Product.ListHotProducts)
	productGroup.GET("/:id", p.Product.GetProduct)

	subGroup := apiGroup.Group("/subscriptions")
	subGroup.GET("/plans/:productId", p.Subscription.GetPlansByProduct)
	subGroup.GET("/plans/byPlanId/:planId", p.Subscription.GetPlanById)
	subGroup.POST("", auth, memberOnly, p.Subscription.CreateSubscription)
	subGroup.GET("/my", auth, memberOnly, p.Subscription.GetMySubscriptions)
	subGroup.PUT("/:id/pause", auth, memberOnly, p.Subscription.Pause)
	subGroup.PUT("/:id/resume", auth, memberOnly, p.Subscription.Resume)
	subGroup.PUT("/:id/cancel", auth, memberOnly, p.Subscription.Cancel)

	cartGroup := apiGroup.Group("/cart", auth, memberOnly)
	cartGroup.GET("", p.Cart.GetCart)
	cartGroup.GET("/total", p.Cart.GetCartTotal)
	cartGroup.POST("", p.Cart.AddToCart)
	cartGroup.PUT("/:cartId", p.Cart.UpdateQuantity)
	cartGroup.DELETE("/:cartId", p.Cart.RemoveItem)
	cartGroup.DELETE("", p.Cart.ClearCart)

	orderGroup := apiGroup.Group("/orders", auth, memberOnly)
	orderGroup.POST("", p.Order.CreateOrder)
	orderGroup.GET("", p.Order.GetOrders)
	orderGroup.GET("/:orderId", p.Order.GetOrderDetail)

	apiGroup.POST("/admin/login", p.Account.AdminLogin)

	adminGroup := apiGroup.Group("/admin", auth, adminOnly)
	adminGroup.GET("/dashboard", p.Dashboard.GetDashboard)
	adminGroup.GET("/members", p.Admin.ListMembers)
	adminGroup.PUT("/members/:id/status", p.Admin.UpdateMemberStatus)
	adminGroup.GET("/orders", p.Admin.ListOrders)
	adminGroup.PUT("/orders/:id/status", p.Admin.UpdateOrderStatus)
	adminGroup.PUT("/orders/:id/payment", p.Admin.UpdatePaymentStatus)
	adminGroup.GET("/subscriptions", p.Admin.ListSubscriptions)
	adminGroup.GET("/products", p.AdminProduct.ListProducts)
	adminGroup.POST("/products", p.AdminProduct.CreateProduct)
	adminGroup.PUT("/products/:id", p.AdminProduct.UpdateProduct)
	adminGroup.PUT("/products/:id/status", p.AdminProduct.UpdateStatus)
	adminGroup.DELETE("/products/:id", p.AdminProduct.DeleteProduct)
	adminGroup.POST("/upload/product-image", p.AdminProduct.UploadImage)
}
