package bidding

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-bidder/internal/core/domain"
)

var paulista = domain.GeoPoint{Lat: -23.5613, Lon: -46.6563}

// budgets is a Reserver over a plain slice. refuse forces refusals for the
// listed indices regardless of the stored amount.
type budgets struct {
	mu     sync.Mutex
	left   []domain.Money
	refuse map[int]bool
	calls  []int
}

func (b *budgets) Remaining(i int) domain.Money {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.left[i]
}

func (b *budgets) Reserve(i int, amount domain.Money) (domain.Money, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, i)
	if b.refuse[i] || b.left[i] < amount {
		return b.left[i], false
	}
	b.left[i] -= amount
	return b.left[i], true
}

func newBudgets(amounts ...string) *budgets {
	b := &budgets{refuse: map[int]bool{}}
	for _, a := range amounts {
		b.left = append(b.left, domain.MustMoney(a))
	}
	return b
}

func radiusCampaign(id, price string) domain.Campaign {
	return domain.Campaign{
		ID:        id,
		Active:    true,
		BidPrice:  domain.MustMoney(price),
		Budget:    domain.MustMoney("100"),
		AdFormats: []string{"banner"},
		Targeting: domain.NewRadius(paulista, 1),
	}
}

func request() *domain.BidRequest {
	return &domain.BidRequest{
		RequestID:  "req-1",
		Location:   paulista,
		AdFormat:   "banner",
		FloorPrice: domain.MustMoney("0.5"),
	}
}

func all(campaigns []domain.Campaign) []int {
	out := make([]int, len(campaigns))
	for i := range out {
		out[i] = i
	}
	return out
}

func TestCheckOrder(t *testing.T) {
	req := request()

	tests := []struct {
		name      string
		mutate    func(c *domain.Campaign)
		remaining string
		want      Rejection
	}{
		{name: "eligible", mutate: func(*domain.Campaign) {}, remaining: "100", want: Eligible},
		{name: "inactive before budget", mutate: func(c *domain.Campaign) { c.Active = false }, remaining: "0", want: RejectInactive},
		{name: "budget", mutate: func(*domain.Campaign) {}, remaining: "0", want: RejectBudget},
		{name: "format", mutate: func(c *domain.Campaign) { c.AdFormats = []string{"video"} }, remaining: "100", want: RejectFormat},
		{name: "floor", mutate: func(c *domain.Campaign) { c.BidPrice = domain.MustMoney("0.49") }, remaining: "100", want: RejectFloor},
		{
			name:      "targeting",
			mutate:    func(c *domain.Campaign) { c.Targeting = domain.NewRadius(domain.GeoPoint{Lat: 0, Lon: 0}, 1) },
			remaining: "100",
			want:      RejectTargeting,
		},
		{
			name:      "excluded",
			mutate:    func(c *domain.Campaign) { c.Exclusions = []domain.Geofence{domain.NewRadius(paulista, 0.2)} },
			remaining: "100",
			want:      RejectExcluded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := radiusCampaign("camp", "1.5")
			tt.mutate(&c)
			assert.Equal(t, tt.want, Check(&c, domain.MustMoney(tt.remaining), req))
		})
	}
}

func TestFloorEqualToBidIsEligible(t *testing.T) {
	c := radiusCampaign("camp", "1.5")
	req := request()
	req.FloorPrice = domain.MustMoney("1.5")
	assert.Equal(t, Eligible, Check(&c, c.Budget, req))
}

func TestMatchesVariants(t *testing.T) {
	square := []domain.GeoPoint{
		{Lat: -23.57, Lon: -46.67},
		{Lat: -23.57, Lon: -46.64},
		{Lat: -23.55, Lon: -46.64},
		{Lat: -23.55, Lon: -46.67},
	}
	far := domain.GeoPoint{Lat: -22.9068, Lon: -43.1729}

	assert.True(t, Matches(&domain.Geofence{Kind: domain.GeofencePolygon, Ring: square}, paulista))
	assert.False(t, Matches(&domain.Geofence{Kind: domain.GeofencePolygon, Ring: square}, far))

	multi := domain.NewMultiRadius(
		domain.Radius{Center: far, RadiusKm: 1},
		domain.Radius{Center: paulista, RadiusKm: 0.1},
	)
	assert.True(t, Matches(&multi, paulista))
	assert.True(t, Matches(&multi, far))
	assert.False(t, Matches(&multi, domain.GeoPoint{Lat: 0, Lon: 0}))

	assert.False(t, Matches(&domain.Geofence{}, paulista), "zero geofence matches nothing")
}

func TestFilterEligibleKeepsCandidateOrder(t *testing.T) {
	campaigns := []domain.Campaign{
		radiusCampaign("a", "1"),
		radiusCampaign("b", "2"),
		radiusCampaign("c", "3"),
	}
	f := NewFilter(campaigns, newBudgets("10", "0", "10"))
	assert.Equal(t, []int{2, 0}, f.Eligible(request(), []int{2, 1, 0}, nil))
}

func TestSelect(t *testing.T) {
	campaigns := []domain.Campaign{
		radiusCampaign("camp_b", "2.00"),
		radiusCampaign("camp_low", "1.00"),
		radiusCampaign("camp_a", "2.00"),
	}

	assert.Equal(t, -1, Select(campaigns, nil))
	assert.Equal(t, 1, Select(campaigns, []int{1, 0}), "2.00 beats 1.00")
	// equal prices resolve to the lowest id whatever the order
	assert.Equal(t, 2, Select(campaigns, []int{0, 1, 2}))
	assert.Equal(t, 0, Select(campaigns, []int{2, 1, 0}))
}

func TestAuctionWins(t *testing.T) {
	campaigns := []domain.Campaign{radiusCampaign("camp_paulista", "1.50")}
	b := newBudgets("100")
	a := NewAuction(campaigns, b)

	out, _ := a.Run(request(), all(campaigns), nil)
	require.Equal(t, StateWon, out.State)
	assert.Equal(t, domain.Bid("camp_paulista", domain.MustMoney("1.50")), out.Decision(campaigns))
	assert.Equal(t, domain.MustMoney("98.5"), out.Remaining)
}

func TestAuctionZeroBudgetIsNoEligibleCampaign(t *testing.T) {
	campaigns := []domain.Campaign{radiusCampaign("camp_paulista", "1.50")}
	a := NewAuction(campaigns, newBudgets("0"))

	out, _ := a.Run(request(), all(campaigns), nil)
	assert.Equal(t, StateExhausted, out.State)
	assert.Equal(t, 0, out.Eligible)
	assert.Equal(t, domain.NoBid(domain.ReasonNoEligibleCampaign), out.Decision(campaigns))
}

func TestAuctionExclusionVoidsMatch(t *testing.T) {
	c := radiusCampaign("camp_paulista", "99")
	c.Exclusions = []domain.Geofence{domain.NewRadius(paulista, 0.5)}
	campaigns := []domain.Campaign{c}

	out, _ := NewAuction(campaigns, newBudgets("100")).Run(request(), all(campaigns), nil)
	assert.Equal(t, domain.NoBid(domain.ReasonNoEligibleCampaign), out.Decision(campaigns))
}

func TestAuctionPicksHighestBid(t *testing.T) {
	campaigns := []domain.Campaign{
		radiusCampaign("camp_low", "1.00"),
		radiusCampaign("camp_high", "2.00"),
	}
	out, _ := NewAuction(campaigns, newBudgets("100", "100")).Run(request(), all(campaigns), nil)
	assert.Equal(t, domain.Bid("camp_high", domain.MustMoney("2.00")), out.Decision(campaigns))
}

func TestAuctionFallsThroughRefusedReservations(t *testing.T) {
	campaigns := []domain.Campaign{
		radiusCampaign("camp_1", "1.00"),
		radiusCampaign("camp_3", "3.00"),
		radiusCampaign("camp_2", "2.00"),
	}
	b := newBudgets("10", "10", "10")
	b.refuse[1] = true
	b.refuse[2] = true

	out, _ := NewAuction(campaigns, b).Run(request(), all(campaigns), nil)
	require.Equal(t, StateWon, out.State)
	assert.Equal(t, "camp_1", campaigns[out.Winner].ID)
	assert.Equal(t, 2, out.Refused)
	assert.Equal(t, []int{1, 2, 0}, b.calls, "reservations follow bid order")
}

func TestAuctionAllRefusedIsInsufficientBudget(t *testing.T) {
	campaigns := []domain.Campaign{
		radiusCampaign("camp_1", "1.00"),
		radiusCampaign("camp_2", "2.00"),
	}
	// positive snapshot, but less than the bid price
	b := newBudgets("0.5", "1.99")

	out, _ := NewAuction(campaigns, b).Run(request(), all(campaigns), nil)
	assert.Equal(t, StateExhausted, out.State)
	assert.Equal(t, 2, out.Eligible)
	assert.Equal(t, 2, out.Refused)
	assert.Equal(t, domain.NoBid(domain.ReasonInsufficientBudget), out.Decision(campaigns))
}

func TestAuctionReusesBuffer(t *testing.T) {
	campaigns := []domain.Campaign{radiusCampaign("a", "1"), radiusCampaign("b", "1")}
	a := NewAuction(campaigns, newBudgets("100", "100"))

	buf := make([]int, 0, 8)
	_, got := a.Run(request(), all(campaigns), buf)
	assert.Equal(t, 8, cap(got))
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateFiltering, StateSelecting, StateReserving, StateRetrying} {
		assert.False(t, s.Terminal(), s.String())
	}
	assert.True(t, StateWon.Terminal())
	assert.True(t, StateExhausted.Terminal())
}
