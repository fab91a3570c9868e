package port

import (
	"geo-bidder/internal/core/domain"
)

// BidUseCase defines the business operations exposed by the bid engine. It
// is the primary port into the application domain and is implemented by the
// usecase adapter. Mocks are generated from this interface for testing.
type BidUseCase interface {
	// Evaluate decides whether to bid on req and, on a bid, reserves the
	// bid price from the winning campaign's budget. It never fails: invalid
	// input is reported as a no-bid decision.
	Evaluate(req domain.BidRequest) domain.BidDecision

	// Budget returns the live budget of the campaign with the given id. The
	// second result is false for unknown campaigns.
	Budget(campaignID string) (BudgetStatus, bool)
}

// BudgetStatus is the budget snapshot of a single campaign. It is a DTO used
// by the HTTP layer.
type BudgetStatus struct {
	CampaignID string
	Active     bool
	Initial    domain.Money
	Remaining  domain.Money
	Spent      domain.Money
}
