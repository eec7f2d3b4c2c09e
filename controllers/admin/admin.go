package controllers

import (
	"podlearn/middleware"
	"podlearn/models"
	"podlearn/services"
	"podlearn/store"
	"podlearn/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminController covers catalog management. All routes behind AdminOnly.
type AdminController struct {
	store store.Store
}

func NewAdminController(st store.Store) *AdminController {
	return &AdminController{store: st}
}

// CreateContent adds a new unpublished item with a generated unique slug.
func (ctl *AdminController) CreateContent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedContent").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.SeriesID != nil {
		series, err := ctl.store.SeriesByID(*reqData.SeriesID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "series lookup", Err: err})
		}
		if series == nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
		}
	}

	slug, err := utils.UniqueSlug(reqData.Title, ctl.store.ContentSlugExists)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "slug probe", Err: err})
	}

	content := models.Content{
		Title:         reqData.Title,
		Slug:          slug,
		Kind:          reqData.Kind,
		Description:   reqData.Description,
		Body:          reqData.Body,
		AudioKey:      reqData.AudioKey,
		ReportKey:     reqData.ReportKey,
		Duration:      reqData.Duration,
		Price:         reqData.Price,
		SeriesID:      reqData.SeriesID,
		IsPurchasable: reqData.IsPurchasable,
	}
	if reqData.Currency != "" {
		content.Currency = reqData.Currency
	}

	if err := ctl.store.CreateContent(&content); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "create content", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// PublishContent flips an item to published.
func (ctl *AdminController) PublishContent(c *fiber.Ctx) error {
	contentID, err := c.ParamsInt("id")
	if err != nil || contentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
	}

	content, err := ctl.store.ContentByID(uint(contentID))
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content lookup", Err: err})
	}
	if content == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	content.IsPublished = true
	if err := ctl.store.SaveContent(content); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "save content", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content published!", content)
}

// CreateSeries adds a new series with a generated unique slug.
func (ctl *AdminController) CreateSeries(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSeries").(*struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Currency    string   `json:"currency"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug, err := utils.UniqueSlug(reqData.Title, ctl.store.SeriesSlugExists)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "slug probe", Err: err})
	}

	series := models.Series{
		Title:       reqData.Title,
		Slug:        slug,
		Description: reqData.Description,
		Price:       reqData.Price,
	}
	if reqData.Currency != "" {
		series.Currency = reqData.Currency
	}

	if err := ctl.store.CreateSeries(&series); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "create series", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Series created successfully!", series)
}

// PublishSeries flips a series to published.
func (ctl *AdminController) PublishSeries(c *fiber.Ctx) error {
	seriesID, err := c.ParamsInt("id")
	if err != nil || seriesID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid series id!", nil)
	}

	series, err := ctl.store.SeriesByID(uint(seriesID))
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "series lookup", Err: err})
	}
	if series == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	series.IsPublished = true
	if err := ctl.store.SaveSeries(series); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "save series", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series published!", series)
}

// CreateQuiz attaches a quiz with questions and options to a content item.
func (ctl *AdminController) CreateQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuiz").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content, err := ctl.store.ContentByID(reqData.ContentID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content lookup", Err: err})
	}
	if content == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	quiz := models.Quiz{
		ContentID:     reqData.ContentID,
		Title:         reqData.Title,
		PassThreshold: reqData.PassThreshold,
		IsPublished:   true,
	}
	for qi, q := range reqData.Questions {
		question := models.QuizQuestion{
			Text:       q.Text,
			OrderIndex: qi,
			Points:     q.Points,
		}
		if question.Points == 0 {
			question.Points = 1
		}
		for oi, o := range q.Options {
			question.Options = append(question.Options, models.QuizOption{
				Text:       o.Text,
				IsCorrect:  o.IsCorrect,
				OrderIndex: oi,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := ctl.store.CreateQuiz(&quiz); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "create quiz", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}
