package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

func GetNotifications(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		extra := store.Where{}
		if v := c.Query("read"); v != "" {
			extra["read"] = v == "true"
		}

		notifications, err := a.Data.Notifications.FindMany(c.Context(), listOptions(c, a, extra))
		if err != nil {
			return storeError(c, "Failed to list notifications", err)
		}
		return success(c, fiber.Map{"notifications": notifications})
	}
}

// UpdateNotification marks a notification read or unread.
func UpdateNotification(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateNotificationRequest
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

		notification, err := a.Data.Notifications.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update notification", err)
		}
		return success(c, fiber.Map{"notification": notification})
	}
}

func DeleteNotification(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Notifications.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete notification", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
