package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
	"github.com/xeipuuv/gojsonschema"
)

// ErrDuplicate is returned when a season/genre pair appears more than once.
var ErrDuplicate = errors.New("duplicate season and genre")

// RecordsSchema defines the JSON schema for imported play-count tables
var RecordsSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"properties": {
			"season": {"type": "string", "minLength": 1},
			"genre": {"type": "string", "minLength": 1},
			"count": {"type": "integer", "minimum": 0}
		},
		"required": ["season", "genre", "count"],
		"additionalProperties": false
	}
}`

// ValidateRecordsJSON validates a JSON document against the records schema
func ValidateRecordsJSON(jsonData []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(RecordsSchema)
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate JSON schema: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("JSON validation failed: %s", strings.Join(errorMessages, "; "))
	}

	return nil
}

// ParseRecords validates, parses and sanitizes a JSON play-count table.
// Season names must be known and season/genre pairs unique.
func ParseRecords(jsonData []byte) ([]dataset.Record, error) {
	// First validate the schema
	if err := ValidateRecordsJSON(jsonData); err != nil {
		return nil, err
	}

	var records []dataset.Record
	if err := json.Unmarshal(jsonData, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	SanitizeRecords(records)

	for _, r := range records {
		if _, err := ValidateSeason(string(r.Season)); err != nil {
			return nil, err
		}
	}

	if dups := hierarchy.Duplicates(records); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrDuplicate, dups[0].Season, dups[0].Genre)
	}

	return records, nil
}

// LoadRecords reads a play-count table from a JSON file.
func LoadRecords(path string) ([]dataset.Record, error) {
	// #nosec G304 - path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return ParseRecords(data)
}

// SanitizeRecords trims whitespace around season and genre names
func SanitizeRecords(records []dataset.Record) {
	for i := range records {
		records[i].Season = dataset.Season(strings.TrimSpace(string(records[i].Season)))
		records[i].Genre = strings.TrimSpace(records[i].Genre)
	}
}
