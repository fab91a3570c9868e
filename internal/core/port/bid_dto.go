package port

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"geo-bidder/internal/core/catalog"
	"geo-bidder/internal/core/domain"
)

// ErrInvalidRequest is wrapped by every BidRequestPayload validation error.
var ErrInvalidRequest = errors.New("invalid bid request")

// BidRequestPayload is the JSON body accepted by POST /bid.
type BidRequestPayload struct {
	RequestID string            `json:"request_id"`
	Timestamp string            `json:"timestamp,omitempty"`
	User      *UserPayload      `json:"user"`
	Inventory *InventoryPayload `json:"inventory"`
}

// UserPayload carries the user position. Coordinates are pointers so that a
// missing field can be told apart from zero.
type UserPayload struct {
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	UserID string   `json:"user_id,omitempty"`
}

// InventoryPayload describes the ad slot on sale.
type InventoryPayload struct {
	PublisherID string          `json:"publisher_id,omitempty"`
	AdFormat    string          `json:"ad_format"`
	FloorPrice  decimal.Decimal `json:"floor_price"`
	Size        string          `json:"size,omitempty"`
}

// ToDomain checks the payload for required fields and converts it. Range
// checks on the coordinates are left to the evaluator, which answers them
// with an invalid_location no-bid rather than an error.
func (p *BidRequestPayload) ToDomain() (domain.BidRequest, error) {
	switch {
	case p.RequestID == "":
		return domain.BidRequest{}, fmt.Errorf("%w: missing request_id", ErrInvalidRequest)
	case p.User == nil || p.User.Lat == nil || p.User.Lon == nil:
		return domain.BidRequest{}, fmt.Errorf("%w: missing user.lat or user.lon", ErrInvalidRequest)
	case p.Inventory == nil || catalog.NormalizeFormat(p.Inventory.AdFormat) == "":
		return domain.BidRequest{}, fmt.Errorf("%w: missing inventory.ad_format", ErrInvalidRequest)
	}
	floor, err := domain.MoneyFromDecimal(p.Inventory.FloorPrice)
	if err != nil {
		return domain.BidRequest{}, fmt.Errorf("%w: inventory.floor_price: %v", ErrInvalidRequest, err)
	}
	return domain.BidRequest{
		RequestID:   p.RequestID,
		Location:    domain.GeoPoint{Lat: *p.User.Lat, Lon: *p.User.Lon},
		AdFormat:    catalog.NormalizeFormat(p.Inventory.AdFormat),
		FloorPrice:  floor,
		UserID:      p.User.UserID,
		PublisherID: p.Inventory.PublisherID,
	}, nil
}

// BidResponsePayload is the JSON body returned by POST /bid.
type BidResponsePayload struct {
	RequestID  string   `json:"request_id"`
	Decision   string   `json:"decision"`
	CampaignID string   `json:"campaign_id,omitempty"`
	BidPrice   *float64 `json:"bid_price,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	LatencyMs  float64  `json:"latency_ms"`
}

// NewBidResponsePayload builds the response for d.
func NewBidResponsePayload(requestID string, d domain.BidDecision, latencyMs float64) BidResponsePayload {
	resp := BidResponsePayload{
		RequestID: requestID,
		Decision:  string(d.Decision),
		Reason:    string(d.Reason),
		LatencyMs: latencyMs,
	}
	if d.IsBid() {
		price := d.BidPrice.Float64()
		resp.CampaignID = d.CampaignID
		resp.BidPrice = &price
	}
	return resp
}
