// Package s3adapter loads the campaign catalog from an S3 object.
package s3adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"geo-bidder/internal/core/catalog"
)

// ErrInvalidURI is returned for catalog locations that are not s3://bucket/key.
var ErrInvalidURI = errors.New("invalid s3 uri")

// ObjectGetter is the subset of the S3 client used by CatalogSource.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// CatalogSource implements port.CatalogSource for a JSON object in S3.
type CatalogSource struct {
	client ObjectGetter
	bucket string
	key    string
}

// NewCatalogSource builds a source for uri using the default AWS credential
// chain. An empty region defers to the environment.
func NewCatalogSource(ctx context.Context, uri, region string) (*CatalogSource, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewCatalogSourceWithClient(s3.NewFromConfig(cfg), bucket, key), nil
}

// NewCatalogSourceWithClient returns a source reading bucket/key through client.
func NewCatalogSourceWithClient(client ObjectGetter, bucket, key string) *CatalogSource {
	return &CatalogSource{client: client, bucket: bucket, key: key}
}

// Load downloads and schema-validates the catalog object.
func (s *CatalogSource) Load(ctx context.Context) ([]catalog.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.bucket, s.key, err)
	}
	records, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return records, nil
}

// ParseURI splits s3://bucket/key into its parts.
func ParseURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return u.Host, key, nil
}
