package shift

import (
	"context"
	"log"
	"sync"
	"time"
)

const salesSyncInterval = 30 * time.Second

// SalesTotalSynchronizer keeps the held shift's running sales total fresh
// while the shift is open, so the dashboard does not poll the head office
// itself. Exactly one loop runs at a time, tied to one shift id.
type SalesTotalSynchronizer struct {
	store    Store
	session  *Session
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	shiftID string
}

func NewSalesTotalSynchronizer(store Store, session *Session) *SalesTotalSynchronizer {
	return &SalesTotalSynchronizer{
		store:    store,
		session:  session,
		interval: salesSyncInterval,
	}
}

// Ensure starts the refresh loop for the given shift unless it is already
// running for it. A loop for a previous shift is torn down first.
func (s *SalesTotalSynchronizer) Ensure(shiftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil && s.shiftID == shiftID {
		return
	}
	if s.stop != nil {
		close(s.stop)
	}
	s.stop = make(chan struct{})
	s.shiftID = shiftID
	go s.run(shiftID, s.stop)
}

// Stop tears the loop down. Safe to call when no loop is running.
func (s *SalesTotalSynchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
		s.shiftID = ""
	}
}

func (s *SalesTotalSynchronizer) run(shiftID string, stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick(shiftID)
		}
	}
}

// tick reads the aggregate total and applies it only when it still belongs
// to the shift the session holds. A read that raced a close or a shift
// change must not clobber anything, so only the sales total field is ever
// touched.
func (s *SalesTotalSynchronizer) tick(shiftID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := s.store.GetShiftSalesTotal(ctx, shiftID)
	if err != nil {
		log.Printf("[sales-sync] sales total read for shift %s failed: %v", shiftID, err)
		return
	}
	s.session.UpdateSalesTotal(shiftID, total)
}
