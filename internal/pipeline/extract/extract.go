package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
	"github.com/nvasani/inspectapi/internal/jsonx"
	"github.com/nvasani/inspectapi/pkg/logx"
)

const systemInstruction = `You are an inspection-document analyst. Extract structured fields from the document and respond with EXACTLY ONE JSON object, nothing else. The object may contain these keys: supplier, buyer, product, invoice_no, container_no, hs_code, quantity, weight, amount, inspection_date, issue_date, findings (array of strings), confidence (0-1), entities (array of {type, value, confidence}), summary (one paragraph). Omit any key whose value is not present in the document. Never invent values.`

const fallbackSummary = "Automated extraction could not parse the model response; the document requires manual review."

// Extractor turns layout output into structured fields via a single
// request to a text-generation service.
type Extractor struct {
	gen    Generator
	logger *logx.Logger
}

func NewExtractor(gen Generator) *Extractor {
	return &Extractor{
		gen:    gen,
		logger: logx.NewLogger("extraction"),
	}
}

// Extract issues one generation request and parses the response with the
// two-phase strategy. A transport or service error is fatal and is
// returned as-is; an unparseable response degrades to an empty result
// with a fallback summary and nil error.
func (e *Extractor) Extract(ctx context.Context, layout docmodel.LayoutResult) (docmodel.ExtractedData, string, error) {
	log := e.logger.With("traceId", ctx.Value("traceId"))

	raw, err := e.gen.Generate(ctx, systemInstruction, buildPrompt(layout))
	if err != nil {
		return docmodel.ExtractedData{}, "", fmt.Errorf("extraction request failed: %w", err)
	}

	var wire struct {
		docmodel.ExtractedData
		Summary string `json:"summary"`
	}
	if err := jsonx.ParseObject(raw, &wire); err != nil {
		log.Warn("Model response was not parseable JSON, degrading to empty result", "error", err)
		return docmodel.ExtractedData{}, fallbackSummary, nil
	}
	return wire.ExtractedData, wire.Summary, nil
}

// buildPrompt lays out the document text followed by the structure the
// layout stage recovered, so the model sees both raw and parsed views.
func buildPrompt(layout docmodel.LayoutResult) string {
	var sb strings.Builder
	sb.WriteString("Document text:\n")
	sb.WriteString(layout.Text)

	if len(layout.KeyValues) > 0 {
		sb.WriteString("\n\nDetected key-value pairs:\n")
		for _, kv := range layout.KeyValues {
			fmt.Fprintf(&sb, "%s: %s\n", kv.Key, kv.Value)
		}
	}
	if len(layout.Tables) > 0 {
		sb.WriteString("\nDetected tables:\n")
		for _, table := range layout.Tables {
			sb.WriteString(strings.Join(table.Headers, " | "))
			sb.WriteString("\n")
			for _, row := range table.Rows {
				sb.WriteString(strings.Join(row, " | "))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
