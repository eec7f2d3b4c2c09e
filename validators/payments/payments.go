package paymentValidator

import (
	"podlearn/middleware"

	"github.com/gofiber/fiber/v2"
)

// Checkout requires exactly one of contentId / seriesId.
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ContentID *uint `json:"contentId"`
			SeriesID  *uint `json:"seriesId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ContentID == nil && reqData.SeriesID == nil {
			errors["contentId"] = "Either contentId or seriesId is required!"
		}
		if reqData.ContentID != nil && reqData.SeriesID != nil {
			errors["contentId"] = "Provide contentId or seriesId, not both!"
		}
		if reqData.ContentID != nil && *reqData.ContentID == 0 {
			errors["contentId"] = "Invalid contentId!"
		}
		if reqData.SeriesID != nil && *reqData.SeriesID == 0 {
			errors["seriesId"] = "Invalid seriesId!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
