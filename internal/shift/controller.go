package shift

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"

	"fuelpos-backend/internal/cache"
	"fuelpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Controller drives the two lifecycle transitions: begin (no active shift ->
// active) and end (active -> none). It never retries on its own; begin and
// end run again only when the caller explicitly asks.
type Controller struct {
	store   Store
	cache   Cache
	session *Session
	sync    *SalesTotalSynchronizer
}

func NewController(store Store, c Cache, session *Session, sync *SalesTotalSynchronizer) *Controller {
	return &Controller{
		store:   store,
		cache:   c,
		session: session,
		sync:    sync,
	}
}

// ParseCashAmount validates a user-entered cash amount before anything
// touches the network.
func ParseCashAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Cash amount must be a non-negative number")
	}
	return v, nil
}

// Begin opens a new shift with the given opening cash. The employee set
// defaults to the requesting employee alone. On any failure nothing changes
// locally and the error is surfaced as-is.
func (c *Controller) Begin(ctx context.Context, openingCash string, requesterID string, employeeIDs []string) (*models.Shift, error) {
	amount, err := ParseCashAmount(openingCash)
	if err != nil {
		return nil, err
	}
	if c.session.Active() != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "A shift is already open at this station")
	}
	if len(employeeIDs) == 0 {
		if requesterID == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "At least one employee is required")
		}
		employeeIDs = []string{requesterID}
	}

	c.session.setLoading(true)
	defer c.session.setLoading(false)

	created, err := c.store.StartShift(ctx, amount, employeeIDs)
	if err != nil {
		c.session.setSuccess(false)
		return nil, err
	}

	c.session.SetActive(created)
	c.cachePut(created)
	c.sync.Ensure(created.ID)
	c.session.setSuccess(true)
	return c.session.Active(), nil
}

// End closes the held shift with the declared closing cash and an optional
// finalized set of payment entries. On failure the active shift stays
// untouched so the caller can retry.
func (c *Controller) End(ctx context.Context, closingCash string, entries []models.PaymentMethodEntry) (*models.Shift, error) {
	amount, err := ParseCashAmount(closingCash)
	if err != nil {
		return nil, err
	}
	active := c.session.Active()
	if active == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No active shift to close")
	}
	for _, e := range entries {
		if !e.Kind.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown payment method kind: "+string(e.Kind))
		}
		if e.Amount < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Payment amounts must be non-negative")
		}
	}

	c.session.setLoading(true)
	c.session.setClosing(true)
	defer func() {
		c.session.setClosing(false)
		c.session.setLoading(false)
	}()

	closed, err := c.store.CloseShift(ctx, active.ID, amount, entries)
	if err != nil {
		c.session.setSuccess(false)
		return nil, err
	}

	c.sync.Stop()
	c.session.SetLastClosed(closed)
	c.session.Clear()
	c.cacheClear(active)
	c.session.setSuccess(true)
	return closed, nil
}

func (c *Controller) cachePut(shift *models.Shift) {
	if err := c.cache.Put(cache.SystemKey(), shift); err != nil {
		log.Printf("[shift] cache active shift: %v", err)
	}
	for _, id := range shift.EmployeeIDs {
		if err := c.cache.Put(cache.IdentityKey(id), shift); err != nil {
			log.Printf("[shift] cache active shift for %s: %v", id, err)
		}
	}
}

func (c *Controller) cacheClear(shift *models.Shift) {
	if err := c.cache.Delete(cache.SystemKey()); err != nil {
		log.Printf("[shift] clear station shift cache: %v", err)
	}
	for _, id := range shift.EmployeeIDs {
		if err := c.cache.Delete(cache.IdentityKey(id)); err != nil {
			log.Printf("[shift] clear shift cache for %s: %v", id, err)
		}
	}
}
