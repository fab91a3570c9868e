package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"geo-bidder/internal/core/bidding"
	"geo-bidder/internal/core/catalog"
	"geo-bidder/internal/core/domain"
	"geo-bidder/internal/core/index"
	"geo-bidder/internal/core/ledger"
	"geo-bidder/internal/core/port"
	"geo-bidder/internal/metrics"
)

// BidUseCase evaluates bid requests against an immutable campaign catalog.
// It wires the spatial index, the auction state machine and the budget
// ledger together and implements port.BidUseCase. A single instance is
// shared by all request goroutines; only the ledger counters are written.
type BidUseCase struct {
	catalog *catalog.Catalog
	grid    *index.Grid
	ledger  *ledger.Ledger
	auction *bidding.Auction
	pub     port.SpendPublisher
	logger  *slog.Logger

	// observe toggles Prometheus recording. Warm-up evaluations run with it
	// off so they do not show up as traffic.
	observe bool
	scratch sync.Pool
	now     func() time.Time
}

type scratch struct {
	candidates []int
	eligible   []int
}

// NewBidUseCase creates a usecase over cat and grid with a fresh ledger
// seeded from the catalog budgets. A nil publisher discards spend events.
func NewBidUseCase(cat *catalog.Catalog, grid *index.Grid, pub port.SpendPublisher, logger *slog.Logger) *BidUseCase {
	if pub == nil {
		pub = port.NopSpendPublisher{}
	}
	l := ledger.New(cat)
	return &BidUseCase{
		catalog: cat,
		grid:    grid,
		ledger:  l,
		auction: bidding.NewAuction(cat.Campaigns(), l),
		pub:     pub,
		logger:  logger,
		observe: true,
		scratch: sync.Pool{New: func() any { return new(scratch) }},
		now:     time.Now,
	}
}

// LoadEngine loads the catalog from src, validates it, builds the spatial
// index and returns a ready usecase. Any error here is fatal for startup.
func LoadEngine(ctx context.Context, src port.CatalogSource, opts index.Options, pub port.SpendPublisher, logger *slog.Logger) (*BidUseCase, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cat, err := catalog.Build(records)
	if err != nil {
		return nil, err
	}
	grid, err := index.Build(cat.Campaigns(), opts)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	stats := grid.Stats()
	logger.Info("catalog loaded",
		slog.Int("campaigns", cat.Len()),
		slog.Int("cells", stats.Cells),
		slog.Int("entries", stats.Entries),
		slog.Int("oversized", stats.Oversized),
	)
	return NewBidUseCase(cat, grid, pub, logger), nil
}

// Evaluate decides on req. A winning decision has already reserved its bid
// price from the campaign budget when Evaluate returns.
func (u *BidUseCase) Evaluate(req domain.BidRequest) domain.BidDecision {
	start := u.now()
	if !req.Location.Valid() {
		d := domain.NoBid(domain.ReasonInvalidLocation)
		u.record(d, start, 0, 0)
		return d
	}

	s := u.scratch.Get().(*scratch)
	defer u.scratch.Put(s)

	s.candidates = u.grid.Candidates(req.Location, s.candidates)
	var out bidding.Outcome
	out, s.eligible = u.auction.Run(&req, s.candidates, s.eligible)
	d := out.Decision(u.catalog.Campaigns())

	if d.IsBid() {
		u.pub.Publish(domain.SpendEvent{
			RequestID:  req.RequestID,
			CampaignID: d.CampaignID,
			Amount:     d.BidPrice,
			Remaining:  out.Remaining,
			CreatedAt:  start.UTC(),
		})
	}
	u.record(d, start, len(s.candidates), out.Refused)

	if u.logger.Enabled(context.Background(), slog.LevelDebug) {
		u.logger.Debug("bid evaluated",
			slog.String("request_id", req.RequestID),
			slog.String("decision", string(d.Decision)),
			slog.String("campaign_id", d.CampaignID),
			slog.String("reason", string(d.Reason)),
			slog.Int("candidates", len(s.candidates)),
			slog.Int("eligible", out.Eligible),
			slog.String("state", out.State.String()),
		)
	}
	return d
}

func (u *BidUseCase) record(d domain.BidDecision, start time.Time, candidates, refused int) {
	if !u.observe {
		return
	}
	metrics.DecisionsTotal.WithLabelValues(string(d.Decision), string(d.Reason)).Inc()
	metrics.CandidatesPerRequest.Observe(float64(candidates))
	if refused > 0 {
		metrics.ReservationsRefusedTotal.Add(float64(refused))
	}
	metrics.EvaluateDurationMs.Observe(float64(u.now().Sub(start).Microseconds()) / 1000)
}

// Budget returns the live budget of the campaign with the given id.
func (u *BidUseCase) Budget(campaignID string) (port.BudgetStatus, bool) {
	remaining, ok := u.ledger.RemainingByID(campaignID)
	if !ok {
		return port.BudgetStatus{}, false
	}
	i, _ := u.catalog.Lookup(campaignID)
	c := u.catalog.Campaign(i)
	return port.BudgetStatus{
		CampaignID: c.ID,
		Active:     c.Active,
		Initial:    c.Budget,
		Remaining:  remaining,
		Spent:      c.Budget - remaining,
	}, true
}

// ReservationConflicts returns how many ledger compare-and-swap attempts
// lost a race since startup.
func (u *BidUseCase) ReservationConflicts() uint64 {
	return u.ledger.Conflicts()
}

// Warmup evaluates requests against a throw-away ledger so that the code
// paths are hot before real traffic arrives. Real budgets, metrics and spend
// events are untouched. It returns the number of bid decisions.
func (u *BidUseCase) Warmup(ctx context.Context, requests []domain.BidRequest) int {
	shadow := NewBidUseCase(u.catalog, u.grid, port.NopSpendPublisher{}, u.logger)
	shadow.observe = false

	bids := 0
	for i := range requests {
		if ctx.Err() != nil {
			break
		}
		if shadow.Evaluate(requests[i]).IsBid() {
			bids++
		}
	}
	u.logger.Info("warm-up complete",
		slog.Int("requests", len(requests)),
		slog.Int("bids", bids),
	)
	return bids
}
