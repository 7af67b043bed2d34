package ocr

import (
	"context"
	"strings"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

// Heuristic is a pluggable stand-in for a real OCR engine: it takes text
// that already left the document (pasted, or extracted from an upload)
// and emits the positional metadata downstream stages expect. A genuine
// engine can replace it behind the same OCRResult contract.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

const (
	pageMargin   = 40.0
	lineHeight   = 24.0
	charWidth    = 8.0
	baseConf     = 0.90
	confSpread   = 0.08
)

// Recognize never fails: empty input yields an empty OCRResult with an
// empty block list, and confidence is always within [0,1].
func (h *Heuristic) Recognize(ctx context.Context, text string) (docmodel.OCRResult, error) {
	result := docmodel.OCRResult{
		Text:   text,
		Blocks: []docmodel.TextBlock{},
	}

	var total float64
	line := 0
	for _, raw := range strings.Split(text, "\n") {
		content := strings.TrimSpace(raw)
		if content == "" {
			continue
		}
		conf := blockConfidence(content)
		total += conf

		top := pageMargin + float64(line)*lineHeight
		result.Blocks = append(result.Blocks, docmodel.TextBlock{
			Text: content,
			Box: docmodel.BoundingBox{
				X1: pageMargin,
				Y1: top,
				X2: pageMargin + float64(len(content))*charWidth,
				Y2: top + lineHeight,
			},
			Confidence: conf,
		})
		line++
	}

	if len(result.Blocks) > 0 {
		result.Confidence = total / float64(len(result.Blocks))
	}
	return result, nil
}

// blockConfidence is deterministic per line so repeated runs agree.
func blockConfidence(line string) float64 {
	var sum int
	for _, r := range line {
		sum += int(r)
	}
	return baseConf + confSpread*float64(sum%100)/100
}
