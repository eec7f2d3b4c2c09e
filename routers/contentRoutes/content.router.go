package contentRoutes

import (
	controllers "podlearn/controllers/content"
	"podlearn/middleware"
	validators "podlearn/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes sets up the published catalog and progress routes
func SetupContentRoutes(app *fiber.App, ctl *controllers.ContentController) {
	group := app.Group("/api/content")
	group.Get("/list", middleware.JWTMiddleware, validators.ContentList(), ctl.List)
	group.Get("/:slug", middleware.JWTMiddleware, ctl.Detail)

	seriesGroup := app.Group("/api/series")
	seriesGroup.Get("/list", middleware.JWTMiddleware, ctl.SeriesList)
	seriesGroup.Get("/:slug", middleware.JWTMiddleware, ctl.SeriesDetail)

	app.Post("/api/progress/listened", middleware.JWTMiddleware, ctl.MarkListened)
}
