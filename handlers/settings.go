package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
)

// GetSettings returns the user's settings, seeding defaults on first read so
// the response is never empty.
func GetSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := a.Data.Settings.ForUser(c.Context(), a.UserID)
		if err != nil {
			return storeError(c, "Failed to fetch settings", err)
		}
		return success(c, fiber.Map{"settings": settings})
	}
}

// UpdateSettings patches the user's settings, creating them from defaults
// when none exist yet.
func UpdateSettings(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateSettingsRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		patch, err := patchFrom(&req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to build patch", err)
		}

		settings, err := a.Data.Settings.Apply(c.Context(), a.UserID, patch)
		if err != nil {
			return storeError(c, "Failed to update settings", err)
		}
		return success(c, fiber.Map{"settings": settings})
	}
}
