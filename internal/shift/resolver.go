package shift

import (
	"context"
	"fmt"
	"log"
	"time"

	"fuelpos-backend/internal/cache"
	"fuelpos-backend/internal/models"
)

// Resolver answers "what is the active shift right now" for an employee or
// for the whole station, with bounded retries and an offline fallback. It
// only ever reads from the head office; shift writes go through the
// Controller.
type Resolver struct {
	store   Store
	cache   Cache
	session *Session
	offline func() bool
	sync    *SalesTotalSynchronizer
	backoff func(attempt int) time.Duration
}

func NewResolver(store Store, c Cache, session *Session, offline func() bool, sync *SalesTotalSynchronizer) *Resolver {
	return &Resolver{
		store:   store,
		cache:   c,
		session: session,
		offline: offline,
		sync:    sync,
		backoff: Backoff,
	}
}

// Resolve returns the active shift for the given employee, or (nil, nil)
// when the head office confirms there is none. A resolution failure is an
// error, never a fabricated nil.
//
// With force false the in-memory handle short-circuits everything: a shift
// adopted by Begin or a previous resolution is answered without a network
// round trip, and a resolution already in flight is not duplicated.
func (r *Resolver) Resolve(ctx context.Context, employeeID string, force bool) (*models.Shift, error) {
	if !force {
		if held := r.session.Active(); held != nil {
			return held, nil
		}
	}

	owns := r.session.beginCheck()
	if !owns && !force {
		return r.session.Active(), nil
	}
	if owns {
		defer r.session.endCheck()
	}

	if r.offline != nil && r.offline() {
		return r.resolveFromCache(employeeID)
	}

	// Station-wide lookup first: any open shift wins no matter which
	// employee is asking. Advisory only, so failures are swallowed when
	// the identity lookup below can still settle the question.
	sys, sysErr := r.store.GetSystemActiveShift(ctx)
	if sysErr != nil {
		log.Printf("[resolver] station-wide shift check failed: %v", sysErr)
	} else if sys != nil {
		r.adopt(sys)
		return r.session.Active(), nil
	}

	if employeeID == "" {
		if sysErr != nil {
			// No identity lookup to fall back to. A failed check is a
			// resolution failure, never a confirmed "no active shift".
			return nil, fmt.Errorf("could not confirm station shift: %w", sysErr)
		}
		// Nothing station-wide and nobody specific to ask for.
		r.settleNone("")
		return nil, nil
	}

	own, err := r.lookupWithRetry(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if own != nil {
		r.adopt(own)
		return r.session.Active(), nil
	}

	r.settleNone(employeeID)
	return nil, nil
}

// adopt commits a confirmed shift to the in-memory handle and both cache
// scopes, and makes sure the sales-total loop is running for it.
func (r *Resolver) adopt(shift *models.Shift) {
	r.session.SetActive(shift)

	if err := r.cache.Put(cache.SystemKey(), shift); err != nil {
		log.Printf("[resolver] cache active shift: %v", err)
	}
	for _, id := range shift.EmployeeIDs {
		if err := r.cache.Put(cache.IdentityKey(id), shift); err != nil {
			log.Printf("[resolver] cache active shift for %s: %v", id, err)
		}
	}

	r.sync.Ensure(shift.ID)
}

// settleNone records a confirmed "no active shift". The cache entry is kept
// while a close is in flight; the close path clears it itself, and racing
// it here could wipe an entry for a shift opened right after.
func (r *Resolver) settleNone(employeeID string) {
	if employeeID != "" && !r.session.closingInFlight() {
		if err := r.cache.Delete(cache.IdentityKey(employeeID)); err != nil {
			log.Printf("[resolver] clear cached shift for %s: %v", employeeID, err)
		}
	}
	r.session.Clear()
	r.sync.Stop()
}

func (r *Resolver) lookupWithRetry(ctx context.Context, employeeID string) (*models.Shift, error) {
	var lastErr error
	for attempt := 1; attempt <= maxResolveAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff(attempt - 1)):
			}
		}

		shift, err := r.store.GetActiveShiftForIdentity(ctx, employeeID)
		if err == nil {
			return shift, nil
		}
		lastErr = err
		log.Printf("[resolver] active shift lookup for %s failed (attempt %d/%d): %v",
			employeeID, attempt, maxResolveAttempts, err)
	}
	return nil, fmt.Errorf("could not confirm active shift for %s: %w", employeeID, lastErr)
}

// resolveFromCache serves the last confirmed shift while offline. No network
// calls are made on this path.
func (r *Resolver) resolveFromCache(employeeID string) (*models.Shift, error) {
	shift, err := r.cache.Get(cache.IdentityKey(employeeID))
	if err != nil {
		return nil, err
	}
	if shift == nil {
		shift, err = r.cache.Get(cache.SystemKey())
		if err != nil {
			return nil, err
		}
	}
	if shift != nil {
		// Adopt and arm the sales-total loop as for any held shift. Ticks
		// that fire before connectivity returns just log and keep going.
		r.session.SetActive(shift)
		r.sync.Ensure(shift.ID)
	}
	return shift, nil
}
