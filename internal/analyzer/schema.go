package analyzer

import (
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed response.schema.json
var responseSchemaJSON string

var responseSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchemaJSON))
})

// SchemaError lists every place where a successful response does not have
// the expected shape.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return "response does not match schema: " + strings.Join(e.Fields, "; ")
}

func validateResponse(body []byte) error {
	schema, err := responseSchema()
	if err != nil {
		return fmt.Errorf("load response schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Fields: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Fields = append(schemaErr.Fields, fmt.Sprintf("%s: %s", field, desc.Description()))
	}

	return schemaErr
}
