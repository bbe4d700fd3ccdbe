package models

import "time"

type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "OPEN"
	ShiftStatusClosed ShiftStatus = "CLOSED"
)

// Shift: one bounded work session at the station. The head office owns the
// record; this service only ever holds a copy of it.
type Shift struct {
	ID          string      `json:"id"`
	Status      ShiftStatus `json:"status"`       // OPEN / CLOSED
	OpeningCash float64     `json:"opening_cash"` // counted into the drawer at start
	ClosingCash float64     `json:"closing_cash"` // declared at close, 0 while OPEN
	StartTime   time.Time   `json:"start_time"`
	EndTime     *time.Time  `json:"end_time,omitempty"` // nil while OPEN
	SalesTotal  float64     `json:"sales_total"`        // running total, refreshed while OPEN
	EmployeeIDs []string    `json:"employee_ids"`       // assigned pump attendants
}

func (s *Shift) IsOpen() bool {
	return s != nil && s.Status == ShiftStatusOpen
}
