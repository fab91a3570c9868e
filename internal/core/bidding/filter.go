// Package bidding holds the per-request decision logic: the eligibility
// filter, the winner selector and the reservation state machine that ties
// them to the budget ledger.
package bidding

import (
	"geo-bidder/internal/core/domain"
	"geo-bidder/internal/core/geo"
)

// Rejection names the first filter step a campaign failed.
type Rejection uint8

const (
	Eligible Rejection = iota
	RejectInactive
	RejectBudget
	RejectFormat
	RejectFloor
	RejectTargeting
	RejectExcluded
)

func (r Rejection) String() string {
	switch r {
	case Eligible:
		return "eligible"
	case RejectInactive:
		return "inactive"
	case RejectBudget:
		return "budget"
	case RejectFormat:
		return "format"
	case RejectFloor:
		return "floor"
	case RejectTargeting:
		return "targeting"
	case RejectExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// BudgetReader exposes the budget snapshot consulted by the filter.
type BudgetReader interface {
	Remaining(i int) domain.Money
}

// Check runs the filter steps for one campaign in order, cheapest first, and
// returns the first failing step or Eligible.
func Check(c *domain.Campaign, remaining domain.Money, req *domain.BidRequest) Rejection {
	switch {
	case !c.Active:
		return RejectInactive
	case remaining <= 0:
		return RejectBudget
	case !c.SupportsFormat(req.AdFormat):
		return RejectFormat
	case c.BidPrice < req.FloorPrice:
		return RejectFloor
	case !Matches(&c.Targeting, req.Location):
		return RejectTargeting
	case Excluded(c.Exclusions, req.Location):
		return RejectExcluded
	}
	return Eligible
}

// Matches reports whether p falls inside g.
func Matches(g *domain.Geofence, p domain.GeoPoint) bool {
	switch g.Kind {
	case domain.GeofenceRadius:
		return geo.Distance(p, g.Radius.Center) <= g.Radius.RadiusKm
	case domain.GeofencePolygon:
		return geo.PointInPolygon(p, g.Ring)
	case domain.GeofenceMultiRadius:
		for _, r := range g.Targets {
			if geo.Distance(p, r.Center) <= r.RadiusKm {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Excluded reports whether p falls inside any of the exclusion geofences.
func Excluded(exclusions []domain.Geofence, p domain.GeoPoint) bool {
	for i := range exclusions {
		if Matches(&exclusions[i], p) {
			return true
		}
	}
	return false
}

// Filter narrows index candidates down to eligible campaigns.
type Filter struct {
	campaigns []domain.Campaign
	budgets   BudgetReader
}

// NewFilter returns a filter over the catalog campaigns.
func NewFilter(campaigns []domain.Campaign, budgets BudgetReader) *Filter {
	return &Filter{campaigns: campaigns, budgets: budgets}
}

// Eligible appends to dst the candidates passing every filter step, in
// candidate order.
func (f *Filter) Eligible(req *domain.BidRequest, candidates []int, dst []int) []int {
	dst = dst[:0]
	for _, i := range candidates {
		if Check(&f.campaigns[i], f.budgets.Remaining(i), req) == Eligible {
			dst = append(dst, i)
		}
	}
	return dst
}
