package shift

import (
	"context"
	"errors"
	"sync"
	"time"

	"fuelpos-backend/internal/cache"
	"fuelpos-backend/internal/models"
)

var errNetwork = errors.New("connection refused")

// fakeStore is an in-memory stand-in for the head-office API.
type fakeStore struct {
	mu sync.Mutex

	system    *models.Shift
	systemErr error

	identity     map[string]*models.Shift
	identityErr  error
	identityFail int // fail this many identity lookups before succeeding

	started  *models.Shift
	startErr error

	closed   *models.Shift
	closeErr error

	salesTotal float64
	salesErr   error

	systemCalls   int
	identityCalls int
	startCalls    int
	closeCalls    int
	salesCalls    int

	// when set, identity lookups signal identityEntered and then block
	// until identityRelease is closed
	identityEntered chan struct{}
	identityRelease chan struct{}
}

func (f *fakeStore) GetSystemActiveShift(ctx context.Context) (*models.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systemCalls++
	if f.systemErr != nil {
		return nil, f.systemErr
	}
	return f.system, nil
}

func (f *fakeStore) GetActiveShiftForIdentity(ctx context.Context, employeeID string) (*models.Shift, error) {
	f.mu.Lock()
	f.identityCalls++
	entered := f.identityEntered
	release := f.identityRelease
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.identityFail > 0 {
		f.identityFail--
		return nil, errNetwork
	}
	if f.identityErr != nil {
		return nil, f.identityErr
	}
	return f.identity[employeeID], nil
}

func (f *fakeStore) StartShift(ctx context.Context, openingCash float64, employeeIDs []string) (*models.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.started, nil
}

func (f *fakeStore) CloseShift(ctx context.Context, shiftID string, closingCash float64, entries []models.PaymentMethodEntry) (*models.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	return f.closed, nil
}

func (f *fakeStore) GetShiftSalesTotal(ctx context.Context, shiftID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.salesCalls++
	if f.salesErr != nil {
		return 0, f.salesErr
	}
	return f.salesTotal, nil
}

func (f *fakeStore) calls() (system, identity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.systemCalls, f.identityCalls
}

// fakeCache is a map-backed Cache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[cache.Key]*models.Shift
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[cache.Key]*models.Shift)}
}

func (f *fakeCache) Get(key cache.Key) (*models.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[key], nil
}

func (f *fakeCache) Put(key cache.Key, shift *models.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = shift
	return nil
}

func (f *fakeCache) Delete(key cache.Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) has(key cache.Key) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

func openShift(id string, employees ...string) *models.Shift {
	return &models.Shift{
		ID:          id,
		Status:      models.ShiftStatusOpen,
		OpeningCash: 100000,
		EmployeeIDs: employees,
	}
}

func noDelay(int) time.Duration { return 0 }
