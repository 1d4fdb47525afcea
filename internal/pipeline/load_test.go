package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"unbudget/internal/store"
)

const loadPayload = `[
	{"row_type":"grand_total","revised_2026":900},
	{"row_type":"entity_total","part":"Part I","section":"2","entity":"DGACM","revised_2026":600},
	{"row_type":"entity_total","part":"Part I","section":"2","entity":"OPGA","revised_2026":300},
	{"row_type":"entity_total","revised_2026":10}
]`

func TestLoad_FetchAndCacheFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.json")
	if err := os.WriteFile(path, []byte(loadPayload), 0o600); err != nil {
		t.Fatal(err)
	}

	cache, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	res, err := Load(context.Background(), path, cache)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.FromCache {
		t.Error("fresh fetch reported FromCache")
	}
	if res.Malformed != 1 {
		t.Errorf("malformed = %d, want 1", res.Malformed)
	}
	if res.Tree.TotalBudget() != 900 {
		t.Errorf("TotalBudget = %.0f, want 900", res.Tree.TotalBudget())
	}

	// The source disappears; the cached payload keeps the app working.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	res, err = Load(context.Background(), path, cache)
	if err != nil {
		t.Fatalf("Load from cache: %v", err)
	}
	if !res.FromCache {
		t.Error("fallback load did not report FromCache")
	}
	if res.Tree.TotalBudget() != 900 {
		t.Errorf("cached TotalBudget = %.0f, want 900", res.Tree.TotalBudget())
	}
}

func TestLoad_NoCacheNoSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	if _, err := Load(context.Background(), path, nil); err == nil {
		t.Fatal("expected an error with no source and no cache")
	}
}

func TestLoadDetails_CacheFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "details.json")
	payload := `[{"num":1,"entity":"DGACM","narratives":[]}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	cache, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	data, fromCache, err := LoadDetails(context.Background(), path, cache)
	if err != nil {
		t.Fatalf("LoadDetails: %v", err)
	}
	if fromCache || string(data) != payload {
		t.Errorf("fresh load: fromCache=%v data=%q", fromCache, data)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	data, fromCache, err = LoadDetails(context.Background(), path, cache)
	if err != nil {
		t.Fatalf("LoadDetails from cache: %v", err)
	}
	if !fromCache || string(data) != payload {
		t.Errorf("fallback load: fromCache=%v data=%q", fromCache, data)
	}
}
