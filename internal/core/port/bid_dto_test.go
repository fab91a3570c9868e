package port

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-bidder/internal/core/domain"
)

func payload(floor string) BidRequestPayload {
	lat, lon := -23.5613, -46.6563
	return BidRequestPayload{
		RequestID: "req-1",
		User:      &UserPayload{Lat: &lat, Lon: &lon},
		Inventory: &InventoryPayload{AdFormat: " Banner ", FloorPrice: decimal.RequireFromString(floor)},
	}
}

func TestToDomain(t *testing.T) {
	p := payload("0.75")
	req, err := p.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "banner", req.AdFormat)
	assert.Equal(t, domain.MustMoney("0.75"), req.FloorPrice)
}

func TestToDomainRejectsFloorBeyondRange(t *testing.T) {
	p := payload("9300000000000")
	_, err := p.ToDomain()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "floor_price")
}
