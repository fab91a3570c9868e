package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"geo-bidder/internal/core/catalog"
)

// CampaignRepository implements port.CatalogSource on the campaigns table
// using pgxpool for PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// campaignRow is one row of the campaigns table. Numeric columns are read
// as text so that they decode into decimals without precision loss.
type campaignRow struct {
	ID          string
	Name        string
	Active      bool
	BidPrice    string
	Budget      string
	DailyBudget *string
	AdFormats   []string
	Targeting   []byte
	Exclusions  []byte
}

const selectCampaigns = `
        SELECT
            id,
            name,
            active,
            bid_price::text,
            budget_remaining::text,
            daily_budget::text,
            ad_formats,
            targeting,
            exclusions
        FROM campaigns
        ORDER BY position`

// Load returns every campaign in insertion order.
func (r *CampaignRepository) Load(ctx context.Context) ([]catalog.Record, error) {
	rows, err := r.pool.Query(ctx, selectCampaigns)
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	raw, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (campaignRow, error) {
		var cr campaignRow
		err := row.Scan(
			&cr.ID,
			&cr.Name,
			&cr.Active,
			&cr.BidPrice,
			&cr.Budget,
			&cr.DailyBudget,
			&cr.AdFormats,
			&cr.Targeting,
			&cr.Exclusions,
		)
		return cr, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan campaigns: %w", err)
	}

	records := make([]catalog.Record, 0, len(raw))
	for i := range raw {
		rec, err := raw[i].toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (cr *campaignRow) toRecord() (catalog.Record, error) {
	fail := func(field string, err error) error {
		return fmt.Errorf("%w: campaign %q: %s: %v", catalog.ErrInvalidCatalog, cr.ID, field, err)
	}

	active := cr.Active
	rec := catalog.Record{
		ID:        cr.ID,
		Name:      cr.Name,
		Active:    &active,
		AdFormats: cr.AdFormats,
	}

	var err error
	if rec.BidPrice, err = decimal.NewFromString(cr.BidPrice); err != nil {
		return rec, fail("bid_price", err)
	}
	if rec.BudgetRemaining, err = decimal.NewFromString(cr.Budget); err != nil {
		return rec, fail("budget_remaining", err)
	}
	if cr.DailyBudget != nil {
		if rec.DailyBudget, err = decimal.NewFromString(*cr.DailyBudget); err != nil {
			return rec, fail("daily_budget", err)
		}
	}
	if err = json.Unmarshal(cr.Targeting, &rec.Targeting); err != nil {
		return rec, fail("targeting", err)
	}
	if len(cr.Exclusions) > 0 {
		if err = json.Unmarshal(cr.Exclusions, &rec.Exclusions); err != nil {
			return rec, fail("exclusions", err)
		}
	}
	return rec, nil
}
