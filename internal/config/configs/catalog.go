package configs

// Catalog sources.
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Catalog selects the campaign source. Path is a local file for the file
// source and an s3://bucket/key URI for the s3 source; it is ignored for
// postgres.
type Catalog struct {
	Source    string `env:"SOURCE" envDefault:"file"`
	Path      string `env:"PATH" envDefault:"data/campaigns.json"`
	AWSRegion string `env:"AWS_REGION"`
}
