package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

func GetExpenses(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		extra := store.Where{}
		if v := c.Query("category"); v != "" {
			extra["category"] = v
		}

		expenses, err := a.Data.Expenses.FindMany(c.Context(), listOptions(c, a, extra))
		if err != nil {
			return storeError(c, "Failed to list expenses", err)
		}
		return success(c, fiber.Map{"expenses": expenses})
	}
}

func CreateExpense(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateExpenseRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		expense, err := a.Data.Expenses.Create(c.Context(), models.Expense{
			UserID:      a.UserID,
			Description: req.Description,
			Amount:      req.Amount,
			Category:    req.Category,
			Date:        req.Date,
		})
		if err != nil {
			return storeError(c, "Failed to create expense", err)
		}
		return created(c, fiber.Map{"expense": expense})
	}
}

func UpdateExpense(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateExpenseRequest
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

		expense, err := a.Data.Expenses.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update expense", err)
		}
		return success(c, fiber.Map{"expense": expense})
	}
}

func DeleteExpense(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Expenses.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete expense", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
