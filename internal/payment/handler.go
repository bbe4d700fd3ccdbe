package payment

import (
	"errors"

	"fuelpos-backend/internal/models"
	"fuelpos-backend/internal/remote"

	"github.com/gofiber/fiber/v2"
)

type AddPaymentMethodsRequest struct {
	PaymentMethods []models.PaymentMethodEntry `json:"payment_methods"`
}

// -------------------------------------------------
// GET /api/shifts/:id/payment-methods
// -------------------------------------------------
func ListPaymentMethodsHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shiftID := c.Params("id")
		return c.JSON(fiber.Map{
			"payment_methods": m.List(c.UserContext(), shiftID),
		})
	}
}

// -------------------------------------------------
// POST /api/shifts/:id/payment-methods
// -------------------------------------------------
func AddPaymentMethodsHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddPaymentMethodsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		entries, err := m.Add(c.UserContext(), c.Params("id"), body.PaymentMethods)
		if err != nil {
			return asFiberError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment_methods": entries})
	}
}

// -------------------------------------------------
// DELETE /api/shifts/:id/payment-methods
// -------------------------------------------------
func DeletePaymentMethodsHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := m.Remove(c.UserContext(), c.Params("id"))
		if err != nil {
			return asFiberError(err)
		}
		return c.JSON(fiber.Map{"payment_methods": entries})
	}
}

// -------------------------------------------------
// GET /api/shifts/:id/reconciliation
// -------------------------------------------------
func ReconciliationHandler(m *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shiftID := c.Params("id")

		shift := m.heldShift(shiftID)
		if shift == nil {
			return fiber.NewError(fiber.StatusNotFound, "Shift is not held at this station")
		}

		entries := m.List(c.UserContext(), shiftID)
		return c.JSON(Reconcile(shift, entries))
	}
}

func asFiberError(err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	var se *remote.StoreError
	if errors.As(err, &se) {
		return fiber.NewError(se.Status, se.Message)
	}
	return fiber.NewError(fiber.StatusBadGateway, err.Error())
}
