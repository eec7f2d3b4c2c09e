package quizRoutes

import (
	controllers "podlearn/controllers/quiz"
	"podlearn/middleware"
	validators "podlearn/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz submission and progress routes
func SetupQuizRoutes(app *fiber.App, ctl *controllers.QuizController) {
	group := app.Group("/api/quizzes")

	group.Post("/:id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), ctl.Submit)
	group.Get("/:id/progress", middleware.JWTMiddleware, validators.QuizID(), ctl.Attempts)

	app.Get("/api/user-progress", middleware.JWTMiddleware, ctl.Progress)
}
