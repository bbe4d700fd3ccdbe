package shift

import (
	"context"

	"fuelpos-backend/internal/cache"
	"fuelpos-backend/internal/models"
)

// Store is the slice of the head-office API the coordinator needs. The
// coordinator never writes shift state anywhere else.
type Store interface {
	GetSystemActiveShift(ctx context.Context) (*models.Shift, error)
	GetActiveShiftForIdentity(ctx context.Context, employeeID string) (*models.Shift, error)
	StartShift(ctx context.Context, openingCash float64, employeeIDs []string) (*models.Shift, error)
	CloseShift(ctx context.Context, shiftID string, closingCash float64, entries []models.PaymentMethodEntry) (*models.Shift, error)
	GetShiftSalesTotal(ctx context.Context, shiftID string) (float64, error)
}

// Cache is the local fallback store for the last confirmed active shift.
type Cache interface {
	Get(key cache.Key) (*models.Shift, error)
	Put(key cache.Key, shift *models.Shift) error
	Delete(key cache.Key) error
}
