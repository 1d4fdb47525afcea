package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t)
	body := []byte(`[{"row_type":"grand_total"}]`)

	if err := c.Put("https://example.org/budget.json", body); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, at, ok, err := c.Get("https://example.org/budget.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get ok = false after Put")
	}
	if !bytes.Equal(got, body) {
		t.Errorf("body = %q, want %q", got, body)
	}
	if at.IsZero() {
		t.Error("fetched_at is zero")
	}
}

func TestCacheGet_Miss(t *testing.T) {
	c := openTestCache(t)

	_, _, ok, err := c.Get("never-stored")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get ok = true for a missing ref")
	}
}

func TestCachePut_Overwrites(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("ref", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("ref", []byte("new")); err != nil {
		t.Fatal(err)
	}

	got, _, ok, err := c.Get("ref")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != "new" {
		t.Errorf("body = %q, want new", got)
	}
}
