package controllers

import (
	"podlearn/middleware"
	"podlearn/services"

	"github.com/gofiber/fiber/v2"
)

// DownloadController maps the three download endpoints onto the download
// authorization service.
type DownloadController struct {
	downloads *services.DownloadService
}

func NewDownloadController(d *services.DownloadService) *DownloadController {
	return &DownloadController{downloads: d}
}

// Podcast returns a signed URL for the episode audio.
func (ctl *DownloadController) Podcast(c *fiber.Ctx) error {
	return ctl.authorize(c, services.DownloadKindAudio)
}

// LearningReport returns a signed URL for the companion report PDF.
func (ctl *DownloadController) LearningReport(c *fiber.Ctx) error {
	return ctl.authorize(c, services.DownloadKindReport)
}

// Certificate returns a signed URL for the user's certificate.
func (ctl *DownloadController) Certificate(c *fiber.Ctx) error {
	return ctl.authorize(c, services.DownloadKindCertificate)
}

func (ctl *DownloadController) authorize(c *fiber.Ctx, kind string) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.QueryInt("contentId")
	if contentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "contentId is required!", nil)
	}

	download, err := ctl.downloads.AuthorizeDownload(c.Context(), userID, uint(contentID), kind)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Download authorized!", download)
}
