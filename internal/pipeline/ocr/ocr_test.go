package ocr

import (
	"context"
	"testing"
)

func TestRecognize_EmptyInput(t *testing.T) {
	result, err := NewHeuristic().Recognize(context.Background(), "")
	if err != nil {
		t.Fatalf("Recognize must not fail on empty input: %v", err)
	}

	if result.Text != "" {
		t.Errorf("text got %q, want empty", result.Text)
	}
	if result.Blocks == nil || len(result.Blocks) != 0 {
		t.Errorf("blocks got %v, want empty non-nil list", result.Blocks)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence %f out of [0,1]", result.Confidence)
	}
}

func TestRecognize_BlocksPerLine(t *testing.T) {
	text := "INSPECTION CERTIFICATE\n\nSupplier: Acme Co\nBuyer: Globex"

	result, err := NewHeuristic().Recognize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Blocks) != 3 {
		t.Fatalf("expected 3 blocks (blank lines skipped), got %d", len(result.Blocks))
	}
	if result.Text != text {
		t.Error("full text must be preserved verbatim")
	}

	prevTop := -1.0
	for _, b := range result.Blocks {
		if b.Confidence < 0 || b.Confidence > 1 {
			t.Errorf("block %q: confidence %f out of range", b.Text, b.Confidence)
		}
		if b.Box.X2 <= b.Box.X1 || b.Box.Y2 <= b.Box.Y1 {
			t.Errorf("block %q: degenerate bounding box %+v", b.Text, b.Box)
		}
		if b.Box.Y1 <= prevTop {
			t.Errorf("block %q: boxes must descend the page", b.Text)
		}
		prevTop = b.Box.Y1
	}

	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Errorf("overall confidence %f out of range", result.Confidence)
	}
}

func TestRecognize_Deterministic(t *testing.T) {
	ctx := context.Background()
	h := NewHeuristic()

	first, _ := h.Recognize(ctx, "Container: ABCD1234567")
	second, _ := h.Recognize(ctx, "Container: ABCD1234567")

	if first.Confidence != second.Confidence {
		t.Error("confidence must be deterministic for identical input")
	}
}

func TestDetectDocType(t *testing.T) {
	tests := []struct {
		path string
		want DocType
	}{
		{"certificate.pdf", TypePDF},
		{"REPORT.DOCX", TypeDoc},
		{"notes.txt", TypeDoc},
		{"scan.png", TypeErr},
	}
	for _, tt := range tests {
		if got := DetectDocType(tt.path); got != tt.want {
			t.Errorf("DetectDocType(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
