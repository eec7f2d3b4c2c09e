package adminRoutes

import (
	controllers "podlearn/controllers/admin"
	"podlearn/middleware"
	validators "podlearn/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up catalog management routes, admin role required
func SetupAdminRoutes(app *fiber.App, ctl *controllers.AdminController) {
	group := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	group.Post("/content", validators.CreateContent(), ctl.CreateContent)
	group.Put("/content/:id/publish", ctl.PublishContent)
	group.Post("/series", validators.CreateSeries(), ctl.CreateSeries)
	group.Put("/series/:id/publish", ctl.PublishSeries)
	group.Post("/quizzes", validators.CreateQuiz(), ctl.CreateQuiz)
}
