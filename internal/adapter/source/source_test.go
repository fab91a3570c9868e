package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-bidder/internal/adapter/file"
	"geo-bidder/internal/adapter/s3"
	"geo-bidder/internal/config/configs"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	src, err := New(ctx, configs.Catalog{Source: configs.SourceFile, Path: "campaigns.json"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &fileadapter.CatalogSource{}, src)

	_, err = New(ctx, configs.Catalog{Source: configs.SourcePostgres}, nil)
	assert.ErrorIs(t, err, ErrNoPool)

	_, err = New(ctx, configs.Catalog{Source: configs.SourceS3, Path: "not-an-uri"}, nil)
	assert.ErrorIs(t, err, s3adapter.ErrInvalidURI)

	_, err = New(ctx, configs.Catalog{Source: "ftp"}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}
