package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

// GetTasks lists the user's tasks, optionally filtered by completion state
// and sorted by a single field (?completed=true&orderBy=dueDate&order=desc).
func GetTasks(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		extra := store.Where{}
		if v := c.Query("completed"); v != "" {
			extra["completed"] = v == "true"
		}

		tasks, err := a.Data.Tasks.FindMany(c.Context(), listOptions(c, a, extra))
		if err != nil {
			return storeError(c, "Failed to list tasks", err)
		}
		return success(c, fiber.Map{"tasks": tasks})
	}
}

// GetTask retrieves a single task by id.
func GetTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		task, err := a.Data.Tasks.FindUnique(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to fetch task", err)
		}
		if task == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return success(c, fiber.Map{"task": task})
	}
}

// CreateTask creates a task owned by the configured user.
func CreateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		task, err := a.Data.Tasks.Create(c.Context(), models.Task{
			UserID:      a.UserID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			DueDate:     req.DueDate,
			Tags:        req.Tags,
		})
		if err != nil {
			return storeError(c, "Failed to create task", err)
		}
		return created(c, fiber.Map{"task": task})
	}
}

// UpdateTask patches only the supplied fields.
func UpdateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateTaskRequest
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

		task, err := a.Data.Tasks.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update task", err)
		}
		return success(c, fiber.Map{"task": task})
	}
}

// DeleteTask removes a task; deleting an unknown id still succeeds.
func DeleteTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Tasks.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete task", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
