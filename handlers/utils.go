package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"planora/app"
	"planora/store"
	"planora/validator"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// storeError maps the store's error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an engine failure and surfaces as a 500.
func storeError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, store.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Record already exists"})
	case errors.Is(err, store.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage unavailable"})
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

// validate runs the request body through the validator and renders field
// errors as a 400.
func validate(c *fiber.Ctx, a *app.App, req any) (bool, error) {
	err := a.Validator.Validate(req)
	if err == nil {
		return true, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": verrs,
		})
	}
	return false, badRequest(c, err.Error())
}

// patchFrom converts an update request into a document holding only the
// fields the caller supplied.
func patchFrom(req any) (store.Document, error) {
	return store.Encode(req)
}

// listOptions builds FindMany options from common query parameters: an
// owner-scoped filter plus optional orderBy/order.
func listOptions(c *fiber.Ctx, a *app.App, extra store.Where) store.FindOptions {
	where := store.Where{"userId": a.UserID}
	for k, v := range extra {
		where[k] = v
	}

	opts := store.FindOptions{Where: where}
	if field := c.Query("orderBy"); field != "" {
		opts.OrderBy = &store.Order{Field: field, Desc: c.Query("order") == "desc"}
	}
	return opts
}
