package middleware

import (
	"errors"
	"log"

	"podlearn/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps the service error taxonomy onto HTTP statuses.
// Store failures are the only 500s; everything else is an expected outcome.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	var dataAccess *services.DataAccessError

	switch {
	case errors.As(err, &validation):
		return JsonResponse(c, fiber.StatusBadRequest, false, validation.Message, fiber.Map{
			"field": validation.Field,
		})
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, services.ErrAccessDenied):
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	case errors.As(err, &dataAccess):
		log.Printf("Store error on %s %s: %v", c.Method(), c.Path(), err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	default:
		log.Printf("Unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
