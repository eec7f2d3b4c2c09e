package downloadRoutes

import (
	controllers "podlearn/controllers/downloads"
	"podlearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupDownloadRoutes sets up the signed-URL download routes
func SetupDownloadRoutes(app *fiber.App, ctl *controllers.DownloadController) {
	group := app.Group("/api/downloads")

	group.Get("/podcast", middleware.JWTMiddleware, ctl.Podcast)
	group.Get("/learning-report", middleware.JWTMiddleware, ctl.LearningReport)
	group.Get("/certificate", middleware.JWTMiddleware, ctl.Certificate)
}
