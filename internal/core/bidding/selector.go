package bidding

import "geo-bidder/internal/core/domain"

// Outbids reports whether a ranks ahead of b: a higher bid wins and equal
// bids are broken by the lexicographically lower campaign id.
func Outbids(a, b *domain.Campaign) bool {
	if a.BidPrice != b.BidPrice {
		return a.BidPrice > b.BidPrice
	}
	return a.ID < b.ID
}

// Select returns the position in eligible of the winning campaign, or -1 when
// eligible is empty.
func Select(campaigns []domain.Campaign, eligible []int) int {
	best := -1
	for pos, i := range eligible {
		if best < 0 || Outbids(&campaigns[i], &campaigns[eligible[best]]) {
			best = pos
		}
	}
	return best
}
