package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"tmms/config"
	"tmms/controllers"
	"tmms/mailer"
	"tmms/middleware"
	"tmms/payments"
	"tmms/storage"
)

// Register wires every endpoint. The public submission endpoints sit behind
// a per-IP rate limit since nothing else gates them.
func Register(r *gin.Engine, cfg *config.Config, mail *mailer.Mailer, gateway *payments.Gateway, uploads *storage.Uploads) {
	authCtl := controllers.NewAuthController(cfg, mail, uploads)
	orderCtl := controllers.NewOrderController()
	paymentCtl := controllers.NewPaymentController(gateway)
	sellCtl := controllers.NewSellController(uploads)
	serviceCtl := controllers.NewServiceController()
	contactCtl := controllers.NewContactController()

	authed := middleware.Auth(cfg.JWTSecret)
	submitLimit := middleware.RateLimit(10, time.Minute)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/customer/register", authCtl.CustomerRegister)
			auth.POST("/verify-email", authCtl.VerifyEmail)
			auth.POST("/resend-otp", authCtl.ResendOTP)
			auth.POST("/customer/login", authCtl.CustomerLogin)
			auth.POST("/forgot-password", authCtl.ForgotPassword)
			auth.POST("/reset-password", authCtl.ResetPassword)
			auth.POST("/admin/register", authCtl.AdminRegister)
			auth.POST("/admin/login", authCtl.AdminLogin)

			auth.GET("/verify", authed, authCtl.Verify)
			auth.PUT("/profile/photo", authed, authCtl.UpdateProfilePhoto)
			auth.PUT("/profile/update", authed, authCtl.UpdateProfile)
		}

		orders := api.Group("/orders", authed)
		{
			admin := orders.Group("/admin", middleware.AdminOnly())
			{
				admin.GET("", orderCtl.ListAll)
				admin.GET("/:orderId", orderCtl.GetAny)
				admin.PUT("/:orderId/status", orderCtl.UpdateStatus)
			}

			orders.POST("/create", orderCtl.Create)
			orders.GET("/my-orders", orderCtl.MyOrders)
			orders.GET("/:orderId", orderCtl.Get)
		}

		payment := api.Group("/payment")
		{
			payment.POST("/create-order", authed, paymentCtl.CreateOrder)
			payment.POST("/verify", paymentCtl.Verify)
			payment.GET("/payment/:paymentId", authed, paymentCtl.GetPayment)
			payment.POST("/webhook", paymentCtl.Webhook)
		}

		api.POST("/sell-requests", submitLimit, sellCtl.Create)
		api.GET("/sell-requests", sellCtl.List)

		api.POST("/service-bookings", submitLimit, serviceCtl.Create)
		api.GET("/service-bookings", serviceCtl.List)

		api.POST("/contacts", submitLimit, contactCtl.Create)
		api.GET("/contacts", contactCtl.List)
	}

	r.Static("/uploads", uploads.Dir())
}
