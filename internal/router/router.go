package router

import (
	"time"

	"qrmenu/config"
	"qrmenu/internal/domain"
	"qrmenu/internal/handler"
	"qrmenu/internal/middleware"
	"qrmenu/internal/repository"
	"qrmenu/internal/service"
	"qrmenu/internal/ws"
	"qrmenu/pkg/cloudinary"
	"qrmenu/pkg/gateway"
	"qrmenu/pkg/genai"
	"qrmenu/pkg/sms"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the externally-constructed clients the router wires in. Any nil
// field falls back to a local substitute so the server can run without
// every credential set (development, tests).
type Deps struct {
	Gateway gateway.Client
	SMS     sms.Sender
	GenAI   genai.Client
	Images  cloudinary.Client
}

// Setup builds the full HTTP surface and the background reaper. The reaper
// is returned unstarted; main launches it with a cancellable context.
func Setup(cfg *config.Config, db *gorm.DB, deps Deps) (*gin.Engine, *service.Reaper) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)

	// Change notification fan-out.
	hub := ws.NewHub()
	broadcaster := ws.NewOrderBroadcaster(hub)

	if deps.SMS == nil {
		deps.SMS = sms.LogSender{}
	}
	if deps.Gateway == nil {
		deps.Gateway = &gateway.StubClient{}
	}

	// Services.
	authService := service.NewAuthService(cfg, userRepo, otpRepo, deps.SMS)
	orderService := service.NewOrderService(orderRepo, broadcaster)
	paymentService := service.NewPaymentService(paymentRepo, orderService, deps.Gateway, cfg.Gateway.KeySecret, cfg.Gateway.Currency)
	couponService := service.NewCouponService(couponRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, deps.GenAI)
	reportService := service.NewReportService(paymentRepo, orderRepo)
	reaper := service.NewReaper(orderService, cfg.Reaper.Interval, cfg.Reaper.MaxAge)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	googleHandler := handler.NewGoogleOAuthHandler(cfg, userRepo, authService)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	couponHandler := handler.NewCouponHandler(couponService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	reportHandler := handler.NewReportHandler(reportService)
	menuHandler := handler.NewMenuHandler(menuRepo, deps.Images)
	tableHandler := handler.NewTableHandler(tableRepo)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(300, time.Minute)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "status": "ok"})
	})
	r.GET("/ws/orders", ws.Handler(hub, &cfg.JWT))

	// Google sign-in lives outside /api; the redirect URL is registered
	// with the OAuth console.
	r.GET("/auth/google", googleHandler.Redirect)
	r.GET("/auth/google/callback", googleHandler.Callback)

	api := r.Group("/api/v1")

	otpLimiter := middleware.NewInMemoryRateLimiter(5, 10*time.Minute)
	auth := api.Group("/auth")
	{
		auth.POST("/send-otp", middleware.RateLimit(otpLimiter), authHandler.SendOTP)
		auth.POST("/verify-otp", authHandler.VerifyOTP)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-token", authHandler.VerifyToken)
		auth.GET("/check-user", authHandler.CheckUser)
	}

	api.GET("/menu", menuHandler.List)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.GET("/profile", authHandler.GetProfile)
		authed.PUT("/profile", authHandler.UpdateProfile)

		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders/mine", orderHandler.ListMine)
		authed.GET("/orders/:orderId", orderHandler.Get)

		authed.POST("/payments/checkout", paymentHandler.CreateCheckout)
		authed.POST("/payments/verify", paymentHandler.VerifyPayment)

		authed.POST("/coupons/apply", couponHandler.Apply)

		authed.POST("/feedback", feedbackHandler.Submit)
	}

	staff := api.Group("")
	staff.Use(middleware.AuthRequired(&cfg.JWT), middleware.RequireRole(domain.RoleOwner, domain.RoleChef))
	{
		staff.GET("/orders", orderHandler.ListAll)
		staff.GET("/orders/queue/chef", orderHandler.ChefQueue)
		staff.PATCH("/orders/:orderId/status", orderHandler.UpdateCookStatus)
	}

	owner := api.Group("")
	owner.Use(middleware.AuthRequired(&cfg.JWT), middleware.RequireRole(domain.RoleOwner))
	{
		owner.GET("/orders/queue/verification", orderHandler.PendingVerification)
		owner.POST("/orders/:orderId/verify", orderHandler.Verify)

		owner.GET("/feedback", feedbackHandler.List)
		owner.PUT("/feedback/:id", feedbackHandler.Update)
		owner.POST("/feedback/:id/remedy", feedbackHandler.GenerateRemedy)

		owner.GET("/reports/monthly", reportHandler.Monthly)
		owner.GET("/reports/daily", reportHandler.Daily)
		owner.GET("/reports/transactions/today", reportHandler.TodayTransactions)

		owner.POST("/menu", menuHandler.Create)
		owner.PUT("/menu/:id", menuHandler.Update)
		owner.DELETE("/menu/:id", menuHandler.Delete)
		owner.POST("/menu/:id/image", menuHandler.UploadImage)

		owner.GET("/tables", tableHandler.List)
		owner.PUT("/tables/:number", tableHandler.UpdateStatus)
	}

	return r, reaper
}
