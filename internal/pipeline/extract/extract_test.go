package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

type mockGenerator struct {
	OnGenerate func(ctx context.Context, system, prompt string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return m.OnGenerate(ctx, system, prompt)
}

func testLayout() docmodel.LayoutResult {
	return docmodel.LayoutResult{
		Text: "Supplier: Acme Co\nBuyer: Globex",
		KeyValues: []docmodel.KeyValue{
			{Key: "Supplier", Value: "Acme Co", Confidence: 0.85},
			{Key: "Buyer", Value: "Globex", Confidence: 0.85},
		},
	}
}

func TestExtract_CleanJSON(t *testing.T) {
	gen := &mockGenerator{
		OnGenerate: func(ctx context.Context, system, prompt string) (string, error) {
			if !strings.Contains(prompt, "Supplier: Acme Co") {
				t.Error("prompt must carry the detected key-value pairs")
			}
			return `{"supplier": "Acme Co", "buyer": "Globex", "confidence": 0.94, "summary": "Invoice from Acme Co to Globex."}`, nil
		},
	}

	data, summary, err := NewExtractor(gen).Extract(context.Background(), testLayout())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Supplier != "Acme Co" || data.Buyer != "Globex" {
		t.Errorf("fields got %+v", data)
	}
	if data.Confidence != 0.94 {
		t.Errorf("confidence got %f, want the model-supplied value", data.Confidence)
	}
	if summary == "" {
		t.Error("summary missing")
	}
}

func TestExtract_WrappedJSON(t *testing.T) {
	gen := &mockGenerator{
		OnGenerate: func(ctx context.Context, system, prompt string) (string, error) {
			return "Sure! Here is the result:\n```json\n{\"supplier\": \"Acme Co\", \"summary\": \"ok\"}\n```", nil
		},
	}

	data, _, err := NewExtractor(gen).Extract(context.Background(), testLayout())
	if err != nil {
		t.Fatalf("wrapped JSON should be salvaged: %v", err)
	}
	if data.Supplier != "Acme Co" {
		t.Errorf("fields got %+v", data)
	}
}

func TestExtract_UnparseableDowngrades(t *testing.T) {
	gen := &mockGenerator{
		OnGenerate: func(ctx context.Context, system, prompt string) (string, error) {
			return "I cannot produce JSON for this document.", nil
		},
	}

	data, summary, err := NewExtractor(gen).Extract(context.Background(), testLayout())
	if err != nil {
		t.Fatalf("parse failure must not be fatal: %v", err)
	}
	if data.Supplier != "" || len(data.Entities) != 0 {
		t.Errorf("expected empty result, got %+v", data)
	}
	if summary != fallbackSummary {
		t.Errorf("summary got %q, want the fallback", summary)
	}
}

func TestExtract_ServiceErrorIsFatal(t *testing.T) {
	gen := &mockGenerator{
		OnGenerate: func(ctx context.Context, system, prompt string) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	_, _, err := NewExtractor(gen).Extract(context.Background(), testLayout())
	if err == nil {
		t.Fatal("service errors must propagate")
	}
}
