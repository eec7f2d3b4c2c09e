package paymentRoutes

import (
	controllers "podlearn/controllers/payments"
	"podlearn/middleware"
	validators "podlearn/validators/payments"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up entitlement, purchase-history, checkout and
// webhook routes. The webhook is unauthenticated; signature verification
// happens in the handler.
func SetupPaymentRoutes(app *fiber.App, ctl *controllers.PaymentController) {
	group := app.Group("/api/payments")

	group.Get("/verify-access", middleware.JWTMiddleware, ctl.VerifyAccess)
	group.Get("/user-purchases", middleware.JWTMiddleware, ctl.UserPurchases)
	group.Post("/checkout", middleware.JWTMiddleware, validators.Checkout(), ctl.Checkout)
	group.Post("/webhook", ctl.Webhook)
}
