package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

func GetPomodoroSessions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		extra := store.Where{}
		if v := c.Query("mode"); v != "" {
			extra["mode"] = v
		}

		sessions, err := a.Data.Pomodoro.FindMany(c.Context(), listOptions(c, a, extra))
		if err != nil {
			return storeError(c, "Failed to list pomodoro sessions", err)
		}
		return success(c, fiber.Map{"sessions": sessions})
	}
}

func CreatePomodoroSession(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreatePomodoroSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		session, err := a.Data.Pomodoro.Create(c.Context(), models.PomodoroSession{
			UserID:   a.UserID,
			TaskID:   req.TaskID,
			Mode:     req.Mode,
			Duration: req.Duration,
		})
		if err != nil {
			return storeError(c, "Failed to create pomodoro session", err)
		}
		return created(c, fiber.Map{"session": session})
	}
}

func UpdatePomodoroSession(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdatePomodoroSessionRequest
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

		session, err := a.Data.Pomodoro.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update pomodoro session", err)
		}
		return success(c, fiber.Map{"session": session})
	}
}

func DeletePomodoroSession(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Pomodoro.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete pomodoro session", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
