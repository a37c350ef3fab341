package repository

import "time"

// Comparison represents a comparisons row.
type Comparison struct {
	ID          string
	SessionID   string
	Category    string
	InstrumentA string
	InstrumentB string
	Response    string
	CreatedAt   time.Time
}
