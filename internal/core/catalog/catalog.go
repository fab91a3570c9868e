// Package catalog validates campaign records and holds the immutable
// campaign snapshot shared by every request.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"geo-bidder/internal/core/domain"
)

var (
	// ErrInvalidCatalog is wrapped by every load-time validation failure.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrEmptyCatalog is returned when the source holds no campaigns.
	ErrEmptyCatalog = fmt.Errorf("%w: catalog contains no campaigns", ErrInvalidCatalog)
)

// Catalog is an ordered, validated set of campaigns with O(1) lookup by id.
// It is never modified after Build and is safe for concurrent use.
type Catalog struct {
	campaigns []domain.Campaign
	byID      map[string]int
}

// Build validates records and returns the catalog. It fails on the first
// invalid record rather than serving a partially valid catalog.
func Build(records []Record) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		campaigns: make([]domain.Campaign, 0, len(records)),
		byID:      make(map[string]int, len(records)),
	}
	for i := range records {
		camp, err := convertRecord(&records[i])
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[camp.ID]; dup {
			return nil, fmt.Errorf("%w: campaign %q: duplicate campaign_id", ErrInvalidCatalog, camp.ID)
		}
		c.byID[camp.ID] = len(c.campaigns)
		c.campaigns = append(c.campaigns, camp)
	}
	return c, nil
}

// Len returns the number of campaigns.
func (c *Catalog) Len() int { return len(c.campaigns) }

// Campaigns returns the campaigns in catalog order. The slice is shared and
// must not be modified.
func (c *Catalog) Campaigns() []domain.Campaign { return c.campaigns }

// Campaign returns the campaign at index i.
func (c *Catalog) Campaign(i int) *domain.Campaign { return &c.campaigns[i] }

// Lookup returns the index of the campaign with the given id.
func (c *Catalog) Lookup(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

func convertRecord(r *Record) (domain.Campaign, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return domain.Campaign{}, fmt.Errorf("%w: campaign with empty campaign_id", ErrInvalidCatalog)
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: campaign %q: %s", ErrInvalidCatalog, id, fmt.Sprintf(format, args...))
	}

	if r.BidPrice.IsNegative() {
		return domain.Campaign{}, fail("bid_price must not be negative, got %s", r.BidPrice)
	}
	if r.BudgetRemaining.IsNegative() {
		return domain.Campaign{}, fail("budget_remaining must not be negative, got %s", r.BudgetRemaining)
	}
	bid, err := domain.MoneyFromDecimal(r.BidPrice)
	if err != nil {
		return domain.Campaign{}, fail("bid_price: %v", err)
	}
	budget, err := domain.MoneyFromDecimal(r.BudgetRemaining)
	if err != nil {
		return domain.Campaign{}, fail("budget_remaining: %v", err)
	}
	daily, err := domain.MoneyFromDecimal(r.DailyBudget)
	if err != nil {
		return domain.Campaign{}, fail("daily_budget: %v", err)
	}

	targeting, err := convertGeofence(r.Targeting)
	if err != nil {
		return domain.Campaign{}, fail("targeting: %v", err)
	}
	exclusions := make([]domain.Geofence, 0, len(r.Exclusions))
	for i, rec := range r.Exclusions {
		g, err := convertGeofence(rec)
		if err != nil {
			return domain.Campaign{}, fail("exclusions[%d]: %v", i, err)
		}
		exclusions = append(exclusions, g)
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return domain.Campaign{
		ID:          id,
		Name:        r.Name,
		Active:      active,
		BidPrice:    bid,
		Budget:      budget,
		DailyBudget: daily,
		AdFormats:   normalizeFormats(r.AdFormats),
		Targeting:   targeting,
		Exclusions:  exclusions,
	}, nil
}

// NormalizeFormat returns the canonical form of an ad format tag.
func NormalizeFormat(f string) string {
	return strings.ToLower(strings.TrimSpace(f))
}

func normalizeFormats(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = NormalizeFormat(f); f != "" {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
