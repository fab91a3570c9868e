package domain

import "slices"

// Campaign represents a geo-targeted advertising campaign as loaded from the
// catalog. Monetary fields are stored in Money micro-units.
//
// A Campaign is immutable once the catalog is built. Budget holds the
// budget_remaining value read at startup; the live counter is owned by the
// budget ledger.
type Campaign struct {
	ID          string
	Name        string
	Active      bool
	BidPrice    Money
	Budget      Money
	DailyBudget Money    // informational, not enforced
	AdFormats   []string // lower-case, sorted, unique
	Targeting   Geofence
	Exclusions  []Geofence
}

// SupportsFormat reports whether the campaign serves the given ad format.
// format must already be lower-case.
func (c *Campaign) SupportsFormat(format string) bool {
	_, ok := slices.BinarySearch(c.AdFormats, format)
	return ok
}
