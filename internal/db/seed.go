package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"geo-bidder/internal/core/catalog"
)

const upsertCampaign = `INSERT INTO campaigns
    (id, name, active, bid_price, budget_remaining, daily_budget, ad_formats, targeting, exclusions, updated_at)
VALUES ($1,$2,$3,$4::text::numeric,$5::text::numeric,$6::text::numeric,$7,$8,$9,now())
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    active = EXCLUDED.active,
    bid_price = EXCLUDED.bid_price,
    budget_remaining = EXCLUDED.budget_remaining,
    daily_budget = EXCLUDED.daily_budget,
    ad_formats = EXCLUDED.ad_formats,
    targeting = EXCLUDED.targeting,
    exclusions = EXCLUDED.exclusions,
    updated_at = now()`

// Seed upserts catalog records into the campaigns table in a single batch.
// Rows keep their original position on update, so the catalog order stays
// stable across repeated seeds.
func Seed(ctx context.Context, pool *pgxpool.Pool, records []catalog.Record) error {
	b := &pgx.Batch{}
	for i := range records {
		args, err := seedArgs(&records[i])
		if err != nil {
			return err
		}
		b.Queue(upsertCampaign, args...)
	}

	br := pool.SendBatch(ctx, b)
	defer br.Close()
	for i := range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("seed campaign %q: %w", records[i].ID, err)
		}
	}
	return nil
}

func seedArgs(r *catalog.Record) ([]any, error) {
	targeting, err := json.Marshal(r.Targeting)
	if err != nil {
		return nil, fmt.Errorf("encode targeting of %q: %w", r.ID, err)
	}
	var exclusions []byte
	if len(r.Exclusions) > 0 {
		if exclusions, err = json.Marshal(r.Exclusions); err != nil {
			return nil, fmt.Errorf("encode exclusions of %q: %w", r.ID, err)
		}
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}
	formats := r.AdFormats
	if formats == nil {
		formats = []string{}
	}
	return []any{
		r.ID,
		r.Name,
		active,
		r.BidPrice.String(),
		r.BudgetRemaining.String(),
		r.DailyBudget.String(),
		formats,
		targeting,
		exclusions,
	}, nil
}
