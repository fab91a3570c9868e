package domain

import (
	"time"
)

// SpendEvent records a successful budget reservation for a winning bid.
type SpendEvent struct {
	RequestID  string    `json:"request_id"`
	CampaignID string    `json:"campaign_id"`
	Amount     Money     `json:"amount_micros"`
	Remaining  Money     `json:"remaining_micros"`
	CreatedAt  time.Time `json:"created_at"`
}
