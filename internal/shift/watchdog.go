package shift

import (
	"log"
	"sync"
	"time"
)

const (
	watchdogInterval = 5 * time.Second
	stuckThreshold   = 10 * time.Second
)

// Watchdog frees the resolver's single-flight guard if it stays set long
// past any plausible request lifetime, e.g. after a cancelled request
// skipped the clear. Liveness repair only: it never cancels the request
// that set the guard.
type Watchdog struct {
	session   *Session
	interval  time.Duration
	threshold time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func NewWatchdog(session *Session) *Watchdog {
	return &Watchdog{
		session:   session,
		interval:  watchdogInterval,
		threshold: stuckThreshold,
		stop:      make(chan struct{}),
	}
}

func (w *Watchdog) Start() {
	go w.run()
}

func (w *Watchdog) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if w.session.forceClearCheck(w.threshold) {
				log.Printf("[watchdog] shift check guard stuck for over %s, resetting", w.threshold)
			}
		}
	}
}

func (w *Watchdog) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}
