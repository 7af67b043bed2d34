package chunker

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplit_NoSentenceLoss(t *testing.T) {
	text := "The shipment arrived at the port of Hamburg on Monday. " +
		"All containers were sealed and accounted for by the inspector. " +
		"Moisture damage was observed on two pallets near the aft bulkhead. " +
		"A full re-inspection has been scheduled for the following week."

	chunks := Split(text, 120)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for a 120-char limit, got %d", len(chunks))
	}

	var joined []string
	for _, c := range chunks {
		joined = append(joined, c.Text)
	}
	combined := strings.Join(joined, " ")

	for _, sentence := range sentences(text) {
		if !strings.Contains(combined, sentence) {
			t.Errorf("sentence lost in chunking: %q", sentence)
		}
	}
}

func TestSplit_MaxSizeRespected(t *testing.T) {
	text := strings.Repeat("Inspection of cargo hold three completed without findings. ", 20)

	for _, c := range Split(text, 200) {
		if len(c.Text) > 200 {
			t.Errorf("chunk %d exceeds max size: %d chars", c.Index, len(c.Text))
		}
	}
}

func TestSplit_OversizedSentenceKeptWhole(t *testing.T) {
	// One sentence longer than the limit must not be cut.
	long := strings.Repeat("cargo ", 40) + "inspected."

	chunks := Split(long, 50)
	if len(chunks) != 1 {
		t.Fatalf("expected a single oversized chunk, got %d", len(chunks))
	}
	if len(chunks[0].Text) <= 50 {
		t.Errorf("oversized sentence appears truncated: %d chars", len(chunks[0].Text))
	}
}

func TestSplit_ShortInputDropped(t *testing.T) {
	tests := []string{
		"",
		"Short note.",
		"Tiny. Bit.",
	}
	for _, text := range tests {
		if got := Split(text, 500); len(got) != 0 {
			t.Errorf("Split(%q) = %d chunks, want 0", text, len(got))
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := "Container ABCD1234567 was opened for inspection. " +
		"Goods matched the packing list in both count and weight. " +
		"No infestation or water damage was present."

	first := Split(text, 80)
	second := Split(text, 80)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different chunk output")
	}
}

func TestSplit_IndexesOrdered(t *testing.T) {
	text := strings.Repeat("The inspector recorded another observation for the record. ", 10)

	for i, c := range Split(text, 150) {
		if c.Index != i {
			t.Errorf("chunk %d carries index %d", i, c.Index)
		}
	}
}
