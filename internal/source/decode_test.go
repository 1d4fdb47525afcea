package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeRows_TolerantPerRow(t *testing.T) {
	payload := `[
		{"row_type":"entity_total","part":"Part I","section":"2","entity":"DGACM","revised_2026":600},
		{"row_type":"entity_total","revised_2026":100},
		"not an object",
		{"row_type":"grand_total","revised_2026":3200}
	]`

	res, err := DecodeRows([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Rows))
	}
	if res.Malformed != 2 {
		t.Errorf("malformed = %d, want 2", res.Malformed)
	}
	if res.Rows[0].Entity != "DGACM" || res.Rows[0].Revised2026 != 600 {
		t.Errorf("first row = %+v", res.Rows[0])
	}
}

func TestDecodeRows_NonArrayIsUnavailable(t *testing.T) {
	for _, payload := range []string{`{"error":"gateway timeout"}`, `<html>`, ``} {
		_, err := DecodeRows([]byte(payload))
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("payload %q: err = %v, want ErrUnavailable", payload, err)
		}
	}
}

func TestDecodeRows_NullableFields(t *testing.T) {
	payload := `[{"row_type":"entity_total","part":"Part I","section":"2","entity":"DGACM",
		"revised_2026":600,"un80_total":-25.5,"variance_vs_approved_pct":null}]`

	res, err := DecodeRows([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := res.Rows[0]
	if row.UN80Total == nil || *row.UN80Total != -25.5 {
		t.Errorf("UN80Total = %v, want -25.5", row.UN80Total)
	}
	if row.VarianceVsApprovedPct != nil {
		t.Errorf("VarianceVsApprovedPct = %v, want nil for JSON null", row.VarianceVsApprovedPct)
	}
}

func TestLoadRows_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.json")
	payload := `[{"row_type":"section_total","part":"Part II","section":"3","section_name":"Political affairs","revised_2026":450}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := LoadRows(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 || res.Rows[0].SectionName != "Political affairs" {
		t.Errorf("rows = %+v", res.Rows)
	}
}

func TestFetchBytes_MissingFile(t *testing.T) {
	_, err := FetchBytes(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
