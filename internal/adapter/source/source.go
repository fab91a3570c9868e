// Package source selects the catalog source named by the configuration.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"geo-bidder/internal/adapter/file"
	"geo-bidder/internal/adapter/postgres"
	"geo-bidder/internal/adapter/s3"
	"geo-bidder/internal/config/configs"
	"geo-bidder/internal/core/port"
)

var (
	// ErrUnsupportedSource is returned for an unknown CATALOG_SOURCE.
	ErrUnsupportedSource = errors.New("unsupported catalog source")
	// ErrNoPool is returned when the postgres source is selected without a pool.
	ErrNoPool = errors.New("postgres catalog source requires a database pool")
)

// New returns the catalog source selected by cfg. pool is only required for
// the postgres source and may be nil otherwise.
func New(ctx context.Context, cfg configs.Catalog, pool *pgxpool.Pool) (port.CatalogSource, error) {
	switch cfg.Source {
	case configs.SourceFile, "":
		return fileadapter.NewCatalogSource(cfg.Path), nil
	case configs.SourceS3:
		src, err := s3adapter.NewCatalogSource(ctx, cfg.Path, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return src, nil
	case configs.SourcePostgres:
		if pool == nil {
			return nil, ErrNoPool
		}
		return postgres.NewCampaignRepository(pool), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, cfg.Source)
	}
}
