package payment

import (
	"context"
	"log"

	"fuelpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Store is the payment-method slice of the head-office API.
type Store interface {
	GetShiftPaymentMethods(ctx context.Context, shiftID string) ([]models.PaymentMethodEntry, error)
	AddShiftPaymentMethods(ctx context.Context, shiftID string, entries []models.PaymentMethodEntry) error
	DeleteShiftPaymentMethods(ctx context.Context, shiftID string) error
}

// ShiftSource exposes the shifts held locally: the open one and the most
// recently closed one. Implemented by the coordinator session.
type ShiftSource interface {
	Active() *models.Shift
	LastClosed() *models.Shift
}

// Manager maintains the payment entries attached to a shift and computes the
// reconciliation figures shown at close.
type Manager struct {
	store  Store
	shifts ShiftSource
}

func NewManager(store Store, shifts ShiftSource) *Manager {
	return &Manager{store: store, shifts: shifts}
}

// List returns the payment entries for a shift. Read failures degrade to an
// empty list with a log line, so a flaky link never blocks the shift detail
// screen.
func (m *Manager) List(ctx context.Context, shiftID string) []models.PaymentMethodEntry {
	entries, err := m.store.GetShiftPaymentMethods(ctx, shiftID)
	if err != nil {
		log.Printf("[payment] list payment methods for shift %s: %v", shiftID, err)
		return []models.PaymentMethodEntry{}
	}
	if entries == nil {
		entries = []models.PaymentMethodEntry{}
	}
	return entries
}

// Add attaches entries to the active shift and returns the refreshed list.
// Requires an active shift; validation happens before any network call.
func (m *Manager) Add(ctx context.Context, shiftID string, entries []models.PaymentMethodEntry) ([]models.PaymentMethodEntry, error) {
	active := m.shifts.Active()
	if active == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No active shift")
	}
	if shiftID == "" {
		shiftID = active.ID
	}
	if len(entries) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "At least one payment entry is required")
	}
	for _, e := range entries {
		if !e.Kind.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown payment method kind: "+string(e.Kind))
		}
		if e.Amount < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Payment amounts must be non-negative")
		}
	}

	if err := m.store.AddShiftPaymentMethods(ctx, shiftID, entries); err != nil {
		return nil, err
	}
	return m.List(ctx, shiftID), nil
}

// Remove deletes the full entry set for a shift (there is no partial
// removal) and returns the refreshed, normally empty, list.
func (m *Manager) Remove(ctx context.Context, shiftID string) ([]models.PaymentMethodEntry, error) {
	if shiftID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Shift id is required")
	}
	if err := m.store.DeleteShiftPaymentMethods(ctx, shiftID); err != nil {
		return nil, err
	}
	return m.List(ctx, shiftID), nil
}

// ComputeCashDifference is closing cash minus opening cash. The itemized
// entries inform reconciliation but never define the difference.
func ComputeCashDifference(shift *models.Shift) float64 {
	return shift.ClosingCash - shift.OpeningCash
}

func EntriesTotal(entries []models.PaymentMethodEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// Reconciliation is what the close screen shows: the drawer difference and
// the itemized coverage are separate figures and stay separate.
type Reconciliation struct {
	ShiftID        string  `json:"shift_id"`
	OpeningCash    float64 `json:"opening_cash"`
	ClosingCash    float64 `json:"closing_cash"`
	CashDifference float64 `json:"cash_difference"` // closing - opening
	EntriesTotal   float64 `json:"entries_total"`   // sum of itemized payment entries
	EntriesDelta   float64 `json:"entries_delta"`   // closing - entries total
}

func Reconcile(shift *models.Shift, entries []models.PaymentMethodEntry) Reconciliation {
	total := EntriesTotal(entries)
	return Reconciliation{
		ShiftID:        shift.ID,
		OpeningCash:    shift.OpeningCash,
		ClosingCash:    shift.ClosingCash,
		CashDifference: ComputeCashDifference(shift),
		EntriesTotal:   total,
		EntriesDelta:   shift.ClosingCash - total,
	}
}

// heldShift returns the locally held shift with the given id, open or just
// closed, or nil when this station does not hold it.
func (m *Manager) heldShift(shiftID string) *models.Shift {
	if s := m.shifts.Active(); s != nil && s.ID == shiftID {
		return s
	}
	if s := m.shifts.LastClosed(); s != nil && s.ID == shiftID {
		return s
	}
	return nil
}
