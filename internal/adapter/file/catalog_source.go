// Package fileadapter reads catalogs and request fixtures from local files.
package fileadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"geo-bidder/internal/core/catalog"
	"geo-bidder/internal/core/domain"
	"geo-bidder/internal/core/port"
)

// CatalogSource implements port.CatalogSource for a JSON file on disk.
type CatalogSource struct {
	path string
}

// NewCatalogSource returns a source reading path.
func NewCatalogSource(path string) *CatalogSource {
	return &CatalogSource{path: path}
}

// Load reads and schema-validates the catalog file.
func (s *CatalogSource) Load(_ context.Context) ([]catalog.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	records, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return records, nil
}

// ReadBidRequests reads a JSON array of bid request payloads, as sent to
// POST /bid, from path. Payloads missing required fields are skipped and
// counted in the second result.
func ReadBidRequests(path string) ([]domain.BidRequest, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read requests: %w", err)
	}
	var payloads []port.BidRequestPayload
	if err = json.Unmarshal(data, &payloads); err != nil {
		return nil, 0, fmt.Errorf("decode requests %s: %w", path, err)
	}

	out := make([]domain.BidRequest, 0, len(payloads))
	skipped := 0
	for i := range payloads {
		req, err := payloads[i].ToDomain()
		if err != nil {
			skipped++
			continue
		}
		out = append(out, req)
	}
	return out, skipped, nil
}
