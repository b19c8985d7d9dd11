package handlers

import (
	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/models"
	"planora/store"
)

func GetBills(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		extra := store.Where{}
		if v := c.Query("paid"); v != "" {
			extra["paid"] = v == "true"
		}

		bills, err := a.Data.Bills.FindMany(c.Context(), listOptions(c, a, extra))
		if err != nil {
			return storeError(c, "Failed to list bills", err)
		}
		return success(c, fiber.Map{"bills": bills})
	}
}

func CreateBill(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateBillRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if ok, err := validate(c, a, &req); !ok {
			return err
		}

		bill, err := a.Data.Bills.Create(c.Context(), models.Bill{
			UserID:    a.UserID,
			Name:      req.Name,
			Amount:    req.Amount,
			DueDate:   req.DueDate,
			Recurring: req.Recurring,
			Category:  req.Category,
		})
		if err != nil {
			return storeError(c, "Failed to create bill", err)
		}
		return created(c, fiber.Map{"bill": bill})
	}
}

func UpdateBill(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateBillRequest
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

		bill, err := a.Data.Bills.Update(c.Context(), c.Params("id"), patch)
		if err != nil {
			return storeError(c, "Failed to update bill", err)
		}
		return success(c, fiber.Map{"bill": bill})
	}
}

func DeleteBill(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := a.Data.Bills.Delete(c.Context(), c.Params("id"))
		if err != nil {
			return storeError(c, "Failed to delete bill", err)
		}
		return success(c, fiber.Map{"deleted": id})
	}
}
