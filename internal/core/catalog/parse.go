package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed catalog.schema.json
var schemaJSON []byte

// maxSchemaErrors caps how many schema violations are reported in one error.
const maxSchemaErrors = 5

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Parse validates data against the catalog JSON schema and decodes it into
// records. Structural violations are reported with their JSON path and wrap
// ErrInvalidCatalog. Semantic validation happens in Build.
func Parse(data []byte) ([]Record, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// not even JSON
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if !result.Valid() {
		violations := result.Errors()
		msgs := make([]string, 0, maxSchemaErrors)
		for i, v := range violations {
			if i == maxSchemaErrors {
				msgs = append(msgs, fmt.Sprintf("and %d more", len(violations)-maxSchemaErrors))
				break
			}
			msgs = append(msgs, v.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
	}

	var records []Record
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return records, nil
}
