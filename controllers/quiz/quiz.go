package controllers

import (
	"podlearn/middleware"
	"podlearn/services"

	"github.com/gofiber/fiber/v2"
)

// QuizController serves quiz submission and progress endpoints.
type QuizController struct {
	quizzes *services.QuizService
}

func NewQuizController(q *services.QuizService) *QuizController {
	return &QuizController{quizzes: q}
}

// Submit records one quiz attempt for the caller.
func (ctl *QuizController) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Score     int                   `json:"score"`
		MaxScore  int                   `json:"maxScore"`
		TimeSpent int64                 `json:"timeSpent"`
		Answers   []services.QuizAnswer `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	completion, err := ctl.quizzes.RecordCompletion(userID, uint(quizID), reqData.Score, reqData.MaxScore, reqData.Answers, reqData.TimeSpent)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt recorded!", fiber.Map{
		"completion": completion,
		"passed":     completion.Passed,
		"percentage": completion.Percentage,
		"attempt":    completion.AttemptNumber,
	})
}

// Attempts lists the caller's prior attempts for one quiz, oldest first.
func (ctl *QuizController) Attempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	attempts, err := ctl.quizzes.Attempts(userID, uint(quizID))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}

// Progress returns the caller's cross-quiz aggregate, recomputed per call.
func (ctl *QuizController) Progress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	progress, err := ctl.quizzes.Progress(userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}
