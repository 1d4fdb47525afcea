package pipeline

import (
	"context"

	"unbudget/internal/model"
	"unbudget/internal/source"
	"unbudget/internal/store"
)

// LoadResult holds the output of the full data loading path.
type LoadResult struct {
	Rows      []model.BudgetRow
	Tree      *model.BudgetTree
	Malformed int
	FromCache bool
}

// Load fetches, decodes, and aggregates the budget dataset at ref. When a
// cache is supplied, a successful fetch refreshes it and a failed fetch falls
// back to the last cached payload, so repeat runs work offline. Cache errors
// are never fatal.
func Load(ctx context.Context, ref string, cache *store.Cache) (*LoadResult, error) {
	data, fetchErr := source.FetchBytes(ctx, ref)

	fromCache := false
	if fetchErr != nil {
		if cache == nil {
			return nil, fetchErr
		}
		cached, _, ok, err := cache.Get(ref)
		if err != nil || !ok {
			return nil, fetchErr
		}
		data = cached
		fromCache = true
	}

	res, err := source.DecodeRows(data)
	if err != nil {
		return nil, err
	}

	if cache != nil && !fromCache {
		_ = cache.Put(ref, data)
	}

	return &LoadResult{
		Rows:      res.Rows,
		Tree:      BuildTree(res.Rows),
		Malformed: res.Malformed,
		FromCache: fromCache,
	}, nil
}

// LoadDetails fetches the narrative dataset at ref with the same cache
// fallback behavior as Load.
func LoadDetails(ctx context.Context, ref string, cache *store.Cache) ([]byte, bool, error) {
	data, fetchErr := source.FetchBytes(ctx, ref)
	if fetchErr == nil {
		if cache != nil {
			_ = cache.Put(ref, data)
		}
		return data, false, nil
	}
	if cache != nil {
		if cached, _, ok, err := cache.Get(ref); err == nil && ok {
			return cached, true, nil
		}
	}
	return nil, false, fetchErr
}
