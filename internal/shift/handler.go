package shift

import (
	"errors"

	"fuelpos-backend/internal/auth"
	"fuelpos-backend/internal/models"
	"fuelpos-backend/internal/remote"

	"github.com/gofiber/fiber/v2"
)

type BeginShiftRequest struct {
	OpeningCash string   `json:"opening_cash"` // string so malformed input fails validation, not parsing
	EmployeeIDs []string `json:"employee_ids"`
}

type EndShiftRequest struct {
	ClosingCash    string                      `json:"closing_cash"`
	PaymentMethods []models.PaymentMethodEntry `json:"payment_methods"`
}

// -------------------------------------------------
// GET /api/shifts/active
// -------------------------------------------------
func CheckActiveShiftHandler(r *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skipCache := c.QueryBool("skip_cache", false)

		shift, err := r.Resolve(c.UserContext(), auth.EmployeeID(c), skipCache)
		if err != nil {
			return asFiberError(err, fiber.StatusBadGateway)
		}
		return c.JSON(fiber.Map{"shift": shift})
	}
}

// -------------------------------------------------
// GET /api/shifts/state
// -------------------------------------------------
func StateHandler(session *Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(session.Snapshot())
	}
}

// -------------------------------------------------
// POST /api/shifts/begin
// -------------------------------------------------
func BeginShiftHandler(ctrl *Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BeginShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		shift, err := ctrl.Begin(c.UserContext(), body.OpeningCash, auth.EmployeeID(c), body.EmployeeIDs)
		if err != nil {
			return asFiberError(err, fiber.StatusBadGateway)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"shift": shift})
	}
}

// -------------------------------------------------
// POST /api/shifts/end
// -------------------------------------------------
func EndShiftHandler(ctrl *Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EndShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		closed, err := ctrl.End(c.UserContext(), body.ClosingCash, body.PaymentMethods)
		if err != nil {
			return asFiberError(err, fiber.StatusBadGateway)
		}
		return c.JSON(fiber.Map{"shift": closed})
	}
}

// asFiberError keeps validation errors and head-office rejections intact
// (status and message pass through verbatim) and wraps everything else as
// the given fallback status.
func asFiberError(err error, fallback int) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	var se *remote.StoreError
	if errors.As(err, &se) {
		return fiber.NewError(se.Status, se.Message)
	}
	return fiber.NewError(fallback, err.Error())
}
