// Package domain contains the core data types for the field trip registration widget.
// This package performs no I/O and is imported by every other internal package
// (client, validation, registration, page, service, handler).
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// School is a school taking part in a field trip.
// Schools are owned by the FieldTrip that lists them.
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldTrip is an organised outing as served by the backend.
// It is immutable once fetched: Cost and Date are formatted for display by
// the format package and never rewritten.
type FieldTrip struct {
	ID       string          `json:"id"`
	Schools  []School        `json:"schools"`
	Location string          `json:"location"`
	Cost     decimal.Decimal `json:"cost"`
	Date     time.Time       `json:"date"`
}

// School returns the school with the given id, if the trip lists it.
func (t FieldTrip) School(id string) (School, bool) {
	for _, s := range t.Schools {
		if s.ID == id {
			return s, true
		}
	}
	return School{}, false
}
