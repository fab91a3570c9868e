package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-bidder/internal/core/catalog"
)

func TestCampaignRowToRecord(t *testing.T) {
	daily := "50.000000"
	row := campaignRow{
		ID:          "camp_001",
		Name:        "Paulista",
		Active:      false,
		BidPrice:    "1.500000",
		Budget:      "100.000000",
		DailyBudget: &daily,
		AdFormats:   []string{"banner", "video"},
		Targeting:   []byte(`{"type":"radius","center":{"lat":-23.5613,"lon":-46.6563},"radius_km":1}`),
		Exclusions:  []byte(`[{"type":"polygon","coords":[[-23.56,-46.66],[-23.56,-46.65],[-23.55,-46.65]]}]`),
	}

	rec, err := row.toRecord()
	require.NoError(t, err)
	assert.Equal(t, "camp_001", rec.ID)
	require.NotNil(t, rec.Active)
	assert.False(t, *rec.Active)
	assert.True(t, decimal.RequireFromString("1.5").Equal(rec.BidPrice))
	assert.True(t, decimal.RequireFromString("100").Equal(rec.BudgetRemaining))
	assert.True(t, decimal.RequireFromString("50").Equal(rec.DailyBudget))
	assert.Equal(t, "radius", rec.Targeting.Type)
	require.Len(t, rec.Exclusions, 1)
	assert.Len(t, rec.Exclusions[0].Coords, 3)

	// the converted record must be accepted by the catalog
	_, err = catalog.Build([]catalog.Record{rec})
	assert.NoError(t, err)
}

func TestCampaignRowToRecordErrors(t *testing.T) {
	base := campaignRow{
		ID:        "camp_001",
		BidPrice:  "1",
		Budget:    "1",
		Targeting: []byte(`{"type":"radius"}`),
	}

	bad := base
	bad.BidPrice = "abc"
	_, err := bad.toRecord()
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	assert.ErrorContains(t, err, "bid_price")

	bad = base
	bad.Targeting = []byte(`{`)
	_, err = bad.toRecord()
	assert.ErrorContains(t, err, "targeting")

	_, err = base.toRecord()
	assert.NoError(t, err, "NULL exclusions are allowed")
}
