package catalog

import "github.com/shopspring/decimal"

// Record is one campaign as it appears in the catalog source. Field names
// follow the catalog JSON schema; monetary values are decoded exactly.
type Record struct {
	ID              string           `json:"campaign_id"`
	Name            string           `json:"name,omitempty"`
	BudgetRemaining decimal.Decimal  `json:"budget_remaining"`
	BidPrice        decimal.Decimal  `json:"bid_price"`
	DailyBudget     decimal.Decimal  `json:"daily_budget"`
	Targeting       GeofenceRecord   `json:"targeting"`
	Exclusions      []GeofenceRecord `json:"exclusions,omitempty"`
	AdFormats       []string         `json:"ad_formats"`
	// Active defaults to true when the field is absent.
	Active *bool `json:"active,omitempty"`
}

// GeofenceRecord is the serialized form of a targeting or exclusion region.
// Type selects which of the remaining fields are meaningful:
// "radius" uses Center and RadiusKm, "polygon" uses Coords as [lat, lon]
// pairs and "multi_radius" uses Targets.
type GeofenceRecord struct {
	Type     string         `json:"type"`
	Center   *PointRecord   `json:"center,omitempty"`
	RadiusKm float64        `json:"radius_km,omitempty"`
	Coords   [][]float64    `json:"coords,omitempty"`
	Targets  []RadiusRecord `json:"targets,omitempty"`
}

// PointRecord is a serialized coordinate.
type PointRecord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RadiusRecord is one member of a multi_radius geofence.
type RadiusRecord struct {
	Center   *PointRecord `json:"center"`
	RadiusKm float64      `json:"radius_km"`
}
