package controllers

import (
	"time"

	"podlearn/middleware"
	"podlearn/models"
	"podlearn/services"
	"podlearn/store"

	"github.com/gofiber/fiber/v2"
)

// ContentController serves the published catalog plus the listened-milestone
// endpoint.
type ContentController struct {
	store        store.Store
	entitlements *services.EntitlementService
}

func NewContentController(st store.Store, e *services.EntitlementService) *ContentController {
	return &ContentController{store: st, entitlements: e}
}

// List returns published content, paginated.
func (ctl *ContentController) List(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `query:"page"`
		Limit *int `query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	contents, total, err := ctl.store.PublishedContents(*reqData.Page, *reqData.Limit)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content list", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"content": contents,
		"pagination": fiber.Map{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	})
}

// Detail returns one published item by slug. The caller's access decision is
// included; the article body of paid content is stripped when access is
// denied.
func (ctl *ContentController) Detail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Params("slug")
	content, err := ctl.store.ContentBySlug(slug)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content lookup", Err: err})
	}
	if content == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	hasAccess := true
	accessType := services.AccessTypeFree
	if !content.IsFree() {
		hasAccess, accessType, err = ctl.entitlements.HasFullAccess(userID, content.ID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}
	}
	if !hasAccess {
		content.Body = ""
	}

	progress, err := ctl.store.ProgressByUserAndContent(userID, content.ID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "progress lookup", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"content":    content,
		"hasAccess":  hasAccess,
		"accessType": accessType,
		"progress":   progress,
	})
}

// MarkListened raises the listened milestone for the caller. Paid content
// requires an entitlement.
func (ctl *ContentController) MarkListened(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.QueryInt("contentId")
	if contentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "contentId is required!", nil)
	}

	content, err := ctl.store.ContentByID(uint(contentID))
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "content lookup", Err: err})
	}
	if content == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if !content.IsFree() {
		hasAccess, _, err := ctl.entitlements.HasFullAccess(userID, content.ID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}
		if !hasAccess {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
		}
	}

	if err := ctl.store.SetProgressFlag(userID, content.ID, store.MilestoneListened, time.Now()); err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "mark listened", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Marked as listened!", nil)
}

// SeriesList returns all published series.
func (ctl *ContentController) SeriesList(c *fiber.Ctx) error {
	series, err := ctl.store.PublishedSeries()
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "series list", Err: err})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series fetched successfully!", fiber.Map{
		"series": series,
	})
}

// SeriesDetail returns one published series with its items and the caller's
// series-level access decision.
func (ctl *ContentController) SeriesDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Params("slug")
	series, err := ctl.store.SeriesBySlug(slug)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "series lookup", Err: err})
	}
	if series == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	contents, err := ctl.store.ContentsBySeries(series.ID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, &services.DataAccessError{Op: "series contents", Err: err})
	}

	hasAccess, accessType, err := ctl.entitlements.HasSeriesAccess(userID, series.ID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series fetched successfully!", fiber.Map{
		"series":     series,
		"content":    contentSummaries(contents),
		"hasAccess":  hasAccess,
		"accessType": accessType,
	})
}

type contentSummary struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Kind     string   `json:"kind"`
	Duration int64    `json:"duration"`
	Price    *float64 `json:"price,omitempty"`
}

func contentSummaries(contents []models.Content) []contentSummary {
	summaries := make([]contentSummary, len(contents))
	for i, content := range contents {
		summaries[i] = contentSummary{
			ID:       content.ID,
			Title:    content.Title,
			Slug:     content.Slug,
			Kind:     content.Kind,
			Duration: content.Duration,
			Price:    content.Price,
		}
	}
	return summaries
}
