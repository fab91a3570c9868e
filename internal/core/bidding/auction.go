package bidding

import "geo-bidder/internal/core/domain"

// State is a step of the per-request evaluation.
type State uint8

const (
	StateFiltering State = iota
	StateSelecting
	StateReserving
	StateWon
	StateRetrying
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateFiltering:
		return "filtering"
	case StateSelecting:
		return "selecting"
	case StateReserving:
		return "reserving"
	case StateWon:
		return "won"
	case StateRetrying:
		return "retrying"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the evaluation stops in s.
func (s State) Terminal() bool {
	return s == StateWon || s == StateExhausted
}

// Reserver performs the conditional budget decrement.
type Reserver interface {
	BudgetReader
	Reserve(i int, amount domain.Money) (domain.Money, bool)
}

// Outcome is the terminal result of one evaluation.
type Outcome struct {
	State     State
	Winner    int // catalog index, -1 unless State is StateWon
	Price     domain.Money
	Remaining domain.Money // budget left on the winner after reservation
	Eligible  int          // campaigns that passed the filter
	Refused   int          // reservations refused by the ledger
}

// Decision maps the outcome onto the wire decision.
func (o Outcome) Decision(campaigns []domain.Campaign) domain.BidDecision {
	switch {
	case o.State == StateWon:
		return domain.Bid(campaigns[o.Winner].ID, o.Price)
	case o.Eligible > 0 && o.Refused == o.Eligible:
		return domain.NoBid(domain.ReasonInsufficientBudget)
	default:
		return domain.NoBid(domain.ReasonNoEligibleCampaign)
	}
}

// Auction runs Filtering, Selecting and Reserving for one request. When the
// ledger refuses the selected campaign, the campaign is dropped and the next
// best one is tried until a reservation succeeds or nobody is left.
type Auction struct {
	campaigns []domain.Campaign
	filter    *Filter
	ledger    Reserver
}

// NewAuction returns an auction over campaigns backed by ledger.
func NewAuction(campaigns []domain.Campaign, ledger Reserver) *Auction {
	return &Auction{
		campaigns: campaigns,
		filter:    NewFilter(campaigns, ledger),
		ledger:    ledger,
	}
}

// Run evaluates req against the index candidates. buf is scratch space for
// the eligible set; the possibly grown slice is returned for reuse.
func (a *Auction) Run(req *domain.BidRequest, candidates []int, buf []int) (Outcome, []int) {
	out := Outcome{State: StateFiltering, Winner: -1}
	var (
		eligible []int
		pos      int
	)
	for !out.State.Terminal() {
		switch out.State {
		case StateFiltering:
			eligible = a.filter.Eligible(req, candidates, buf)
			buf = eligible
			out.Eligible = len(eligible)
			out.State = StateSelecting

		case StateSelecting:
			pos = Select(a.campaigns, eligible)
			if pos < 0 {
				out.State = StateExhausted
				continue
			}
			out.State = StateReserving

		case StateReserving:
			i := eligible[pos]
			price := a.campaigns[i].BidPrice
			left, ok := a.ledger.Reserve(i, price)
			if ok {
				out.State = StateWon
				out.Winner = i
				out.Price = price
				out.Remaining = left
				continue
			}
			out.Refused++
			out.State = StateRetrying

		case StateRetrying:
			last := len(eligible) - 1
			eligible[pos] = eligible[last]
			eligible = eligible[:last]
			out.State = StateSelecting
		}
	}
	return out, buf
}
