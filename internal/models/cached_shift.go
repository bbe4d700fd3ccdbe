package models

import "time"

// CachedActiveShift: best-effort local mirror of the last confirmed active
// shift, used only to answer "is a shift open" while the head office is
// unreachable. Never authoritative once connectivity is back.
type CachedActiveShift struct {
	CacheKey  string `gorm:"primaryKey;size:100"`
	Payload   string `gorm:"type:text;not null"` // serialized Shift
	UpdatedAt time.Time
}
