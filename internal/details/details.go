// Package details loads and matches the narrative records (details.json)
// shown when a budget entity is selected. Records are fetched lazily, only
// when a leaf node is first selected; a fetch failure affects only that
// selection and is retryable.
package details

import (
	"context"
	"encoding/json"
	"fmt"

	"unbudget/internal/source"
)

// Narrative is one paragraph of an entity's budget chapter. Level follows the
// document's numbering: 0 for "92.", 1 for "(a)", 2 for "(i)".
type Narrative struct {
	Prefix string `json:"prefix"`
	Level  int    `json:"level"`
	Text   string `json:"text"`
}

// ResourceTable is the tabular resource-change breakdown by object of
// expenditure, when the chapter carries one.
type ResourceTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Record holds the narrative chapter for one entity or section.
type Record struct {
	Num           int            `json:"num"`
	Section       string         `json:"section"`
	Entity        string         `json:"entity"`
	Narratives    []Narrative    `json:"narratives"`
	ResourceTable *ResourceTable `json:"resource_table"`
}

// Decode parses a details.json payload. A non-array payload is the same
// retryable class as a failed fetch.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: details payload is not a JSON array: %v", source.ErrUnavailable, err)
	}
	return records, nil
}

// Load fetches and decodes the narrative records at ref.
func Load(ctx context.Context, ref string) ([]Record, error) {
	data, err := source.FetchBytes(ctx, ref)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Match finds the record for a budget line by exact name equality against up
// to three candidate names, in order: the resolved entity name, the raw
// entity field, and the chapter title. First match wins. A nil result is not
// an error; it renders as "no narrative available".
func Match(records []Record, candidates ...string) *Record {
	for _, name := range candidates {
		if name == "" {
			continue
		}
		for i := range records {
			if records[i].Entity == name {
				return &records[i]
			}
		}
	}
	return nil
}
