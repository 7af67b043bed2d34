package layout

import (
	"testing"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

func parseText(text string) docmodel.LayoutResult {
	return Parse(docmodel.OCRResult{Text: text, Confidence: 0.9})
}

func TestParse_KeyValuePairs(t *testing.T) {
	result := parseText("Supplier: Acme Co\nBuyer: Globex\nContainer: ABCD1234567\nHS: 940540")

	if len(result.KeyValues) != 4 {
		t.Fatalf("expected 4 key-value pairs, got %d: %+v", len(result.KeyValues), result.KeyValues)
	}

	want := map[string]string{
		"Supplier":  "Acme Co",
		"Buyer":     "Globex",
		"Container": "ABCD1234567",
		"HS":        "940540",
	}
	for _, kv := range result.KeyValues {
		if want[kv.Key] != kv.Value {
			t.Errorf("pair %q: got %q, want %q", kv.Key, kv.Value, want[kv.Key])
		}
		if kv.Confidence <= 0 || kv.Confidence > 1 {
			t.Errorf("pair %q: confidence %f out of range", kv.Key, kv.Confidence)
		}
	}
}

func TestParse_SplitsOnFirstSeparatorOnly(t *testing.T) {
	result := parseText("Remark: arrival delayed: weather")

	if len(result.KeyValues) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(result.KeyValues))
	}
	if result.KeyValues[0].Value != "arrival delayed: weather" {
		t.Errorf("value got %q, want the remainder after the first separator", result.KeyValues[0].Value)
	}
}

func TestParse_Table(t *testing.T) {
	result := parseText("Item | Qty | Unit\nLamps | 400 | pcs\nCables | 800 | m")

	if len(result.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(result.Tables))
	}
	table := result.Tables[0]
	if len(table.Headers) != 3 || table.Headers[0] != "Item" {
		t.Errorf("headers got %v", table.Headers)
	}
	if len(table.Rows) != 2 || table.Rows[1][0] != "Cables" {
		t.Errorf("rows got %v", table.Rows)
	}
}

func TestParse_DelimiterWinsTieBreak(t *testing.T) {
	// Both ":" and "|" present: the delimiter check has priority.
	result := parseText("Weight: kg | Qty: pcs\n18500 | 1200")

	if len(result.KeyValues) != 0 {
		t.Errorf("delimited line was misclassified as key-value: %+v", result.KeyValues)
	}
	if len(result.Tables) != 1 {
		t.Fatalf("expected the tie-break to produce a table, got %d", len(result.Tables))
	}
}

func TestParse_MalformedTableDropped(t *testing.T) {
	// A single delimited row cannot form a table; no error either.
	result := parseText("Item | Qty | Unit\nSupplier: Acme Co")

	if len(result.Tables) != 0 {
		t.Errorf("expected no tables for a single row, got %+v", result.Tables)
	}
	if len(result.KeyValues) != 1 {
		t.Errorf("surrounding key-value lines must still parse, got %d", len(result.KeyValues))
	}
}

func TestParse_Sections(t *testing.T) {
	result := parseText("INSPECTION CERTIFICATE\nNo. 2024-889\nSupplier: Acme Co\nFindings recorded below.")

	if len(result.Sections) != 3 {
		t.Fatalf("expected header/body/footer, got %d sections", len(result.Sections))
	}
	if result.Sections[0].Type != docmodel.SectionHeader {
		t.Errorf("first section type got %s", result.Sections[0].Type)
	}
	if result.Sections[1].Type != docmodel.SectionBody {
		t.Errorf("second section type got %s", result.Sections[1].Type)
	}
	if result.Sections[2].Type != docmodel.SectionFooter {
		t.Errorf("last section type got %s", result.Sections[2].Type)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	result := parseText("")

	if result.KeyValues == nil || result.Tables == nil || result.Sections == nil {
		t.Error("empty input must yield empty slices, not nil")
	}
	if len(result.KeyValues)+len(result.Tables)+len(result.Sections) != 0 {
		t.Errorf("empty input produced structure: %+v", result)
	}
}
