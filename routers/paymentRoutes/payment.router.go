package paymentRoutes

import (
	paymentControllers "learnhub/controllers/payment"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/api/payment")

	paymentGroup.Post("/courses/:id/initialize-payment", middleware.JWTMiddleware, middleware.CheckRole(models.RoleStudent), paymentControllers.InitializePayment)

	// Redirected from Paystack, no bearer token
	paymentGroup.Post("/verify-payment", paymentControllers.VerifyPayment)
}
