package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

func GetNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		extra := store.Where{}
		if v := c.Query("pinned"); v != "" {
			extra["pinned"] = v == "true"
		}

		notes, err := a.Data.Notes.FindMany(c.Context(), listOptions(c, a, extra))
		if err != nil {
			return storeError(c, "Failed to list notes", err)
		}
		return success(c, fiber.Map{"notes": notes})
	}
}

func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		note, err := a.Data.Notes.FindUnique(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to fetch note", err)
		}
		if note == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return success(c, fiber.Map{"note": note})
	}
}

func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		note, err := a.Data.Notes.Create(c.Context(), models.Note{
			UserID:  a.UserID,
			Title:   req.Title,
			Content: req.Content,
			Tags:    req.Tags,
			Pinned:  req.Pinned,
		})
		if err != nil {
			return storeError(c, "Failed to create note", err)
		}
		return created(c, fiber.Map{"note": note})
	}
}

func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateNoteRequest
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

		note, err := a.Data.Notes.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update note", err)
		}
		return success(c, fiber.Map{"note": note})
	}
}

func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Notes.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete note", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
