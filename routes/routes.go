package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quickbite/configs"
	"quickbite/controllers"
	"quickbite/entity"
	"quickbite/middlewares"
	"quickbite/notifications"
	"quickbite/pkg/cache"
	"quickbite/pkg/gateway"
	"quickbite/repository"
	"quickbite/services"
)

// RegisterRoutes wires repositories, services and controllers and mounts
// the API. External collaborators (gateway, mail sender, cache) come in
// as interfaces so main decides the real implementations.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *configs.Config,
	gw gateway.Gateway,
	sender notifications.Sender,
	store *cache.Cache,
	logger *zap.Logger,
) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"success": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	addrRepo := repository.NewAddressRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	payRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	notify := notifications.NewService(sender, logger)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(db, restRepo, store)
	cartSvc := services.NewCartService(db, cartRepo, restRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, restRepo, userRepo, addrRepo, payRepo, notify, logger)
	paySvc := services.NewPaymentService(db, payRepo, orderRepo, userRepo, gw, notify, logger)
	addrSvc := services.NewAddressService(addrRepo, userRepo, notify)
	reviewSvc := services.NewReviewService(db, reviewRepo, restRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, reviewSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	payCtrl := controllers.NewPaymentController(paySvc)
	addrCtrl := controllers.NewAddressController(addrSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	ownerOrAdmin := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleRestaurantOwner, entity.RoleAdmin)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
		a.PATCH("/me", auth, authCtrl.UpdateMe)
	}

	// Restaurants (public reads, owner/admin writes)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/reviews", restCtrl.Reviews)
	r.POST("/restaurants", ownerOrAdmin, restCtrl.Create)
	r.PUT("/restaurants/:id", ownerOrAdmin, restCtrl.Update)
	r.DELETE("/restaurants/:id", ownerOrAdmin, restCtrl.Delete)
	r.POST("/restaurants/:id/menu", ownerOrAdmin, restCtrl.AddMenuItem)
	r.PUT("/restaurants/:id/menu/:itemId", ownerOrAdmin, restCtrl.UpdateMenuItem)
	r.DELETE("/restaurants/:id/menu/:itemId", ownerOrAdmin, restCtrl.DeleteMenuItem)

	// Cart
	cart := r.Group("/cart", auth)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("", cartCtrl.Add)
		cart.PUT("/items/:id", cartCtrl.UpdateItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PUT("/:id", orderCtrl.UpdateStatus)
		orders.DELETE("/:id", orderCtrl.Cancel)
	}

	// Payments. The webhook is called by the gateway and must stay
	// unauthenticated; the signature check is its integrity boundary.
	payments := r.Group("/payments")
	{
		payments.POST("/webhook", payCtrl.Webhook)
		payments.POST("/create-intent", auth, payCtrl.CreateIntent)
		payments.POST("/refund", auth, payCtrl.Refund)
		payments.GET("", auth, payCtrl.History)
	}

	// Addresses
	addrs := r.Group("/addresses", auth)
	{
		addrs.POST("", addrCtrl.Create)
		addrs.GET("", addrCtrl.List)
		addrs.GET("/:id", addrCtrl.Detail)
		addrs.PUT("/:id", addrCtrl.Update)
		addrs.DELETE("/:id", addrCtrl.Delete)
	}

	// Reviews
	reviews := r.Group("/reviews", auth)
	{
		reviews.POST("", reviewCtrl.Create)
		reviews.PUT("/:id", reviewCtrl.Update)
		reviews.DELETE("/:id", reviewCtrl.Delete)
	}
}
