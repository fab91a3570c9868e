package domain

// BidRequest describes one bid opportunity. The HTTP layer builds it from the
// wire request; RequestID is opaque and echoed back unchanged.
type BidRequest struct {
	RequestID   string
	Location    GeoPoint
	AdFormat    string // lower-case
	FloorPrice  Money
	UserID      string
	PublisherID string
}

// Decision is the wire value of a bid outcome.
type Decision string

const (
	DecisionBid   Decision = "bid"
	DecisionNoBid Decision = "no_bid"
)

// NoBidReason explains a no_bid decision.
type NoBidReason string

const (
	ReasonInvalidLocation    NoBidReason = "invalid_location"
	ReasonNoEligibleCampaign NoBidReason = "no_eligible_campaign"
	ReasonInsufficientBudget NoBidReason = "insufficient_budget"
)

// BidDecision is either a bid for CampaignID at BidPrice or a no-bid with a
// Reason. Use Bid and NoBid to construct it.
type BidDecision struct {
	Decision   Decision
	CampaignID string
	BidPrice   Money
	Reason     NoBidReason
}

// Bid returns a winning decision.
func Bid(campaignID string, price Money) BidDecision {
	return BidDecision{Decision: DecisionBid, CampaignID: campaignID, BidPrice: price}
}

// NoBid returns a no-bid decision with the given reason.
func NoBid(reason NoBidReason) BidDecision {
	return BidDecision{Decision: DecisionNoBid, Reason: reason}
}

// IsBid reports whether d is a winning decision.
func (d BidDecision) IsBid() bool {
	return d.Decision == DecisionBid
}
