package server

import (
	"greenmart-api/internal/config"
	"greenmart-api/internal/handler"
	appmw "greenmart-api/internal/middleware"
	"greenmart-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo *echo.Echo
	cfg  *config.Config

	authHandler       *handler.AuthHandler
	catalogHandler    *handler.CatalogHandler
	cartHandler       *handler.CartHandler
	orderHandler      *handler.OrderHandler
	adminOrderHandler *handler.AdminOrderHandler
	reviewHandler     *handler.ReviewHandler
}

func NewServer(
	cfg *config.Config,
	authService service.AuthService,
	catalogService service.CatalogService,
	cartService service.CartService,
	orderService service.OrderService,
	adminOrderService service.AdminOrderService,
	reviewService service.ReviewService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:              e,
		cfg:               cfg,
		authHandler:       handler.NewAuthHandler(authService),
		catalogHandler:    handler.NewCatalogHandler(catalogService),
		cartHandler:       handler.NewCartHandler(cartService),
		orderHandler:      handler.NewOrderHandler(orderService),
		adminOrderHandler: handler.NewAdminOrderHandler(adminOrderService),
		reviewHandler:     handler.NewReviewHandler(reviewService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	secret := s.cfg.JWT.Secret
	userAuth := appmw.UserAuth(secret)
	adminAuth := appmw.AdminAuth(secret)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.GET("/verify-email", s.authHandler.VerifyEmail)
	auth.POST("/forgot-password", s.authHandler.ForgotPassword)
	auth.POST("/reset-password", s.authHandler.ResetPassword)
	auth.POST("/admin/login", s.authHandler.AdminLogin)
	auth.POST("/admin/forgot-password", s.authHandler.AdminForgotPassword)
	auth.POST("/admin/reset-password", s.authHandler.AdminResetPassword)

	// -------- public catalog --------
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)
	api.GET("/categories", s.catalogHandler.ListCategories)
	api.GET("/faqs", s.catalogHandler.ListFAQs)
	api.GET("/products/:id/reviews", s.reviewHandler.ListByProduct)

	// -------- user --------
	cart := api.Group("/cart", userAuth)
	cart.GET("", s.cartHandler.Get)
	cart.POST("/items", s.cartHandler.SetItem)
	cart.DELETE("/items/:productId", s.cartHandler.RemoveItem)
	cart.DELETE("", s.cartHandler.Clear)

	orders := api.Group("/orders", userAuth)
	orders.POST("", s.orderHandler.Create)
	orders.GET("", s.orderHandler.ListMine)
	orders.PATCH("/:id/cancel", s.orderHandler.Cancel)

	api.POST("/products/:id/reviews", s.reviewHandler.Create, userAuth)

	// -------- admin (every route behind adminAuth) --------
	admin := api.Group("/admin", adminAuth)
	admin.GET("", s.adminOrderHandler.List)
	admin.GET("/summary", s.adminOrderHandler.SalesSummary)
	admin.GET("/:id", s.adminOrderHandler.Get)
	admin.PUT("/:id", s.adminOrderHandler.Update)
	admin.PUT("/payment/:id", s.adminOrderHandler.SetPayment)
	admin.PUT("/delivery-status/:id", s.adminOrderHandler.SetDeliveryStatus)
	admin.DELETE("/:id", s.adminOrderHandler.Delete)

	admin.POST("/products", s.catalogHandler.CreateProduct)
	admin.PUT("/products/:id", s.catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.catalogHandler.DeleteProduct)
	admin.POST("/categories", s.catalogHandler.CreateCategory)
	admin.PUT("/categories/:id", s.catalogHandler.RenameCategory)
	admin.DELETE("/categories/:id", s.catalogHandler.DeleteCategory)
	admin.POST("/faqs", s.catalogHandler.CreateFAQ)
	admin.PUT("/faqs/:id", s.catalogHandler.UpdateFAQ)
	admin.DELETE("/faqs/:id", s.catalogHandler.DeleteFAQ)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
