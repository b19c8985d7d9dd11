package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

func GetEvents(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := a.Data.Events.FindMany(c.Context(), listOptions(c, a, store.Where{}))
		if err != nil {
			return storeError(c, "Failed to list events", err)
		}
		return success(c, fiber.Map{"events": events})
	}
}

func GetEvent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := a.Data.Events.FindUnique(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to fetch event", err)
		}
		if event == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return success(c, fiber.Map{"event": event})
	}
}

func CreateEvent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateEventRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		event, err := a.Data.Events.Create(c.Context(), models.Event{
			UserID:      a.UserID,
			Title:       req.Title,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			AllDay:      req.AllDay,
			Location:    req.Location,
			Color:       req.Color,
		})
		if err != nil {
			return storeError(c, "Failed to create event", err)
		}
		return created(c, fiber.Map{"event": event})
	}
}

func UpdateEvent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateEventRequest
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

		event, err := a.Data.Events.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update event", err)
		}
		return success(c, fiber.Map{"event": event})
	}
}

func DeleteEvent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Events.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete event", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
