// Package ledger tracks the remaining budget of every campaign and performs
// the atomic conditional decrement that reserves budget for a winning bid.
package ledger

import (
	"sync/atomic"

	"geo-bidder/internal/core/catalog"
	"geo-bidder/internal/core/domain"
)

// counter is padded to a cache line so that campaigns won concurrently do
// not contend on the same line.
type counter struct {
	v atomic.Int64
	_ [56]byte
}

// Ledger holds one counter per catalog campaign. Counters only decrease and
// never drop below zero. All methods are safe for concurrent use.
type Ledger struct {
	catalog   *catalog.Catalog
	remaining []counter
	conflicts atomic.Uint64
}

// New seeds a ledger with the catalog's budget_remaining values.
func New(cat *catalog.Catalog) *Ledger {
	l := &Ledger{
		catalog:   cat,
		remaining: make([]counter, cat.Len()),
	}
	for i, c := range cat.Campaigns() {
		l.remaining[i].v.Store(int64(c.Budget))
	}
	return l
}

// Remaining returns a snapshot of the budget left for campaign i.
func (l *Ledger) Remaining(i int) domain.Money {
	return domain.Money(l.remaining[i].v.Load())
}

// Reserve subtracts amount from campaign i when at least amount is left.
// It returns the budget remaining after the call and whether the
// reservation succeeded. A refused reservation leaves the counter intact.
func (l *Ledger) Reserve(i int, amount domain.Money) (domain.Money, bool) {
	if amount < 0 {
		return l.Remaining(i), false
	}
	c := &l.remaining[i].v
	for {
		cur := c.Load()
		if cur < int64(amount) {
			return domain.Money(cur), false
		}
		next := cur - int64(amount)
		if c.CompareAndSwap(cur, next) {
			return domain.Money(next), true
		}
		l.conflicts.Add(1)
	}
}

// RemainingByID returns the budget left for the campaign with the given id.
func (l *Ledger) RemainingByID(id string) (domain.Money, bool) {
	i, ok := l.catalog.Lookup(id)
	if !ok {
		return 0, false
	}
	return l.Remaining(i), true
}

// Conflicts returns how many compare-and-swap attempts lost a race. It is a
// measure of contention, not of refused reservations.
func (l *Ledger) Conflicts() uint64 {
	return l.conflicts.Load()
}
