package port

import (
	"context"

	"geo-bidder/internal/core/catalog"
)

// CatalogSource is an outbound port returning the raw campaign records the
// catalog is built from. It is called once at startup.
type CatalogSource interface {
	Load(ctx context.Context) ([]catalog.Record, error)
}
