package source

import (
	"context"
	"encoding/json"
	"fmt"

	"unbudget/internal/model"
)

// DecodeResult reports what happened while decoding a budget payload.
type DecodeResult struct {
	Rows      []model.BudgetRow
	Malformed int // rows skipped: undecodable or missing identifying fields
}

// DecodeRows decodes a budget.json payload. A payload that is not a JSON
// array belongs to the retryable ErrUnavailable class; individual rows that
// fail to decode or lack their identifying fields are counted and skipped.
func DecodeRows(data []byte) (DecodeResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DecodeResult{}, fmt.Errorf("%w: budget payload is not a JSON array: %v", ErrUnavailable, err)
	}

	var res DecodeResult
	for _, msg := range raw {
		var row model.BudgetRow
		if err := json.Unmarshal(msg, &row); err != nil {
			res.Malformed++
			continue
		}
		if !row.Identified() {
			res.Malformed++
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// LoadRows fetches and decodes the budget dataset at ref.
func LoadRows(ctx context.Context, ref string) (DecodeResult, error) {
	data, err := FetchBytes(ctx, ref)
	if err != nil {
		return DecodeResult{}, err
	}
	return DecodeRows(data)
}
