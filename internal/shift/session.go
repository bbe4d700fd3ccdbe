package shift

import (
	"sync"
	"time"

	"fuelpos-backend/internal/models"
)

// Session owns the shared mutable coordinator state: the active-shift handle,
// the resolver's single-flight guard and the flags the UI observes. Only the
// Resolver and the Controller write to it.
type Session struct {
	mu sync.Mutex

	active     *models.Shift
	lastClosed *models.Shift

	checking       bool
	checkStartedAt time.Time // when the guard was last set

	closing bool // a close is in flight; suppresses cache clears
	loading bool
	success bool
}

func NewSession() *Session {
	return &Session{}
}

// State is the snapshot the presentation layer polls.
type State struct {
	ActiveShift *models.Shift `json:"active_shift"`
	IsChecking  bool          `json:"is_checking"`
	IsLoading   bool          `json:"is_loading"`
	Success     bool          `json:"success"`
}

// Active returns a copy of the held shift, or nil. Callers get a copy so a
// concurrent sales-total refresh cannot race their reads.
func (s *Session) Active() *models.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyShift(s.active)
}

func (s *Session) SetActive(shift *models.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = copyShift(shift)
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// LastClosed returns the most recently closed shift, kept so reconciliation
// can still be shown right after a close.
func (s *Session) LastClosed() *models.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyShift(s.lastClosed)
}

func (s *Session) SetLastClosed(shift *models.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastClosed = copyShift(shift)
}

// UpdateSalesTotal applies a fresh sales total only when it still belongs to
// the shift being held. Reports whether it was applied.
func (s *Session) UpdateSalesTotal(shiftID string, total float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || s.active.ID != shiftID {
		return false
	}
	s.active.SalesTotal = total
	return true
}

// beginCheck claims the single-flight guard. Returns false when a resolution
// is already in flight.
func (s *Session) beginCheck() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checking {
		return false
	}
	s.checking = true
	s.checkStartedAt = time.Now()
	return true
}

func (s *Session) endCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checking = false
}

func (s *Session) Checking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

// forceClearCheck drops the guard if it has been held longer than threshold.
// Used by the watchdog only.
func (s *Session) forceClearCheck(threshold time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.checking || time.Since(s.checkStartedAt) <= threshold {
		return false
	}
	s.checking = false
	return true
}

func (s *Session) setClosing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closing = v
}

func (s *Session) closingInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Session) setSuccess(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.success = v
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ActiveShift: copyShift(s.active),
		IsChecking:  s.checking,
		IsLoading:   s.loading,
		Success:     s.success,
	}
}

func copyShift(shift *models.Shift) *models.Shift {
	if shift == nil {
		return nil
	}
	cp := *shift
	return &cp
}
