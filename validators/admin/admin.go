package adminValidator

import (
	"strings"

	"podlearn/middleware"
	"podlearn/models"

	"github.com/gofiber/fiber/v2"
)

func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string   `json:"title"`
			Kind          string   `json:"kind"`
			Description   string   `json:"description"`
			Body          string   `json:"body"`
			AudioKey      string   `json:"audioKey"`
			ReportKey     string   `json:"reportKey"`
			Duration      int64    `json:"duration"`
			Price         *float64 `json:"price"`
			Currency      string   `json:"currency"`
			SeriesID      *uint    `json:"seriesId"`
			IsPurchasable bool     `json:"isPurchasable"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Kind != models.ContentKindPodcast && reqData.Kind != models.ContentKindArticle {
			errors["kind"] = "Kind must be PODCAST or ARTICLE!"
		}

		if reqData.Kind == models.ContentKindPodcast && strings.TrimSpace(reqData.AudioKey) == "" {
			errors["audioKey"] = "Audio key is required for podcasts!"
		}

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.IsPurchasable && reqData.Price == nil {
			errors["price"] = "Purchasable content needs a price!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

func CreateSeries() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Price       *float64 `json:"price"`
			Currency    string   `json:"currency"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSeries", reqData)
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ContentID     uint   `json:"contentId"`
			Title         string `json:"title"`
			PassThreshold int    `json:"passThreshold"`
			Questions     []struct {
				Text    string `json:"text"`
				Points  int    `json:"points"`
				Options []struct {
					Text      string `json:"text"`
					IsCorrect bool   `json:"isCorrect"`
				} `json:"options"`
			} `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ContentID == 0 {
			errors["contentId"] = "Content id is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassThreshold < 0 || reqData.PassThreshold > 100 {
			errors["passThreshold"] = "Pass threshold must be between 0 and 100!"
		}
		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}
		for _, q := range reqData.Questions {
			if strings.TrimSpace(q.Text) == "" {
				errors["questions"] = "Every question needs text!"
				break
			}
			if len(q.Options) < 2 {
				errors["questions"] = "Every question needs at least two options!"
				break
			}
			hasCorrect := false
			for _, o := range q.Options {
				if o.IsCorrect {
					hasCorrect = true
				}
			}
			if !hasCorrect {
				errors["questions"] = "Every question needs a correct option!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
