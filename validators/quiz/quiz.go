package quizValidator

import (
	"podlearn/middleware"
	"podlearn/services"

	"github.com/gofiber/fiber/v2"
)

// QuizID checks the :id route parameter and stores it in Locals.
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := c.ParamsInt("id")
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
		}
		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// SubmitQuiz validates the submission shape. The pass/fail arithmetic and
// the per-answer integrity checks live in the service; this only rejects
// requests that cannot possibly be a submission.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID, err := c.ParamsInt("id")
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
		}
		c.Locals("quizID", quizID)

		reqData := new(struct {
			Score     int                   `json:"score"`
			MaxScore  int                   `json:"maxScore"`
			TimeSpent int64                 `json:"timeSpent"`
			Answers   []services.QuizAnswer `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MaxScore <= 0 {
			errors["maxScore"] = "Max score must be greater than 0!"
		}
		if reqData.Score < 0 {
			errors["score"] = "Score cannot be negative!"
		}
		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		if reqData.TimeSpent < 0 {
			errors["timeSpent"] = "Time spent cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
