package details

import (
	"errors"
	"testing"

	"unbudget/internal/source"
)

var records = []Record{
	{Num: 1, Section: "2", Entity: "Department for General Assembly and Conference Management"},
	{Num: 2, Section: "2", Entity: "DGACM"},
	{Num: 3, Section: "3", Entity: "Political affairs"},
}

func TestMatch_CandidateOrderWins(t *testing.T) {
	// The resolved entity name is tried before the raw entity field even when
	// both would match.
	got := Match(records, "DGACM", "Department for General Assembly and Conference Management")
	if got == nil || got.Num != 2 {
		t.Fatalf("Match = %+v, want record 2 (first candidate wins)", got)
	}
}

func TestMatch_FallsThroughEmptyCandidates(t *testing.T) {
	got := Match(records, "", "Political affairs")
	if got == nil || got.Num != 3 {
		t.Fatalf("Match = %+v, want record 3", got)
	}
}

func TestMatch_NoMatchIsNil(t *testing.T) {
	if got := Match(records, "Unknown entity"); got != nil {
		t.Errorf("Match = %+v, want nil", got)
	}
	if got := Match(records); got != nil {
		t.Errorf("Match with no candidates = %+v, want nil", got)
	}
}

func TestMatch_ExactEqualityOnly(t *testing.T) {
	if got := Match(records, "dgacm"); got != nil {
		t.Errorf("Match is case sensitive, got %+v", got)
	}
}

func TestDecode(t *testing.T) {
	payload := `[{
		"num": 5,
		"section": "2",
		"entity": "DGACM",
		"narratives": [
			{"prefix": "92", "level": 0, "text": "The Department continues..."},
			{"prefix": "a", "level": 1, "text": "Streamlined servicing;"}
		],
		"resource_table": {
			"headers": ["Object of expenditure", "2025", "2026"],
			"rows": [["Posts", "100.0", "98.5"]]
		}
	}]`

	got, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	rec := got[0]
	if len(rec.Narratives) != 2 || rec.Narratives[1].Level != 1 {
		t.Errorf("narratives = %+v", rec.Narratives)
	}
	if rec.ResourceTable == nil || len(rec.ResourceTable.Rows) != 1 {
		t.Errorf("resource table = %+v", rec.ResourceTable)
	}
}

func TestDecode_NonArrayIsUnavailable(t *testing.T) {
	_, err := Decode([]byte(`{"oops": true}`))
	if !errors.Is(err, source.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestDecode_MissingResourceTableIsNil(t *testing.T) {
	got, err := Decode([]byte(`[{"num": 1, "entity": "OPGA", "narratives": []}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ResourceTable != nil {
		t.Errorf("resource table = %+v, want nil", got[0].ResourceTable)
	}
}
