package layout

import (
	"strings"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

const (
	kvSeparator    = ":"
	tableDelimiter = "|"
	footerMarker   = "--- end of document ---"

	// header section covers at most this many leading lines
	headerLineCount = 2

	// a table needs a header row plus at least one data row
	minTableRows = 2

	kvConfidence = 0.85
)

// Parser wraps Parse for callers holding a stage interface.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(ocr docmodel.OCRResult) docmodel.LayoutResult {
	return Parse(ocr)
}

// Parse derives document structure from OCR output: key-value pairs,
// delimited tables and coarse sections. A line carrying the table
// delimiter is always a table row, even when it also contains the
// key-value separator.
func Parse(ocr docmodel.OCRResult) docmodel.LayoutResult {
	result := docmodel.LayoutResult{
		Text:      ocr.Text,
		Sections:  []docmodel.Section{},
		Tables:    []docmodel.Table{},
		KeyValues: []docmodel.KeyValue{},
	}

	lines := nonEmptyLines(ocr.Text)

	var tableRows [][]string
	for _, line := range lines {
		switch {
		case strings.Contains(line, tableDelimiter):
			tableRows = append(tableRows, splitCells(line))
		case strings.Contains(line, kvSeparator):
			key, value, _ := strings.Cut(line, kvSeparator)
			result.KeyValues = append(result.KeyValues, docmodel.KeyValue{
				Key:        strings.TrimSpace(key),
				Value:      strings.TrimSpace(value),
				Confidence: kvConfidence,
			})
		}
	}

	// the first contiguous delimiter block forms the table; anything
	// shorter than header+row is treated as noise
	if len(tableRows) >= minTableRows {
		result.Tables = append(result.Tables, docmodel.Table{
			Headers: tableRows[0],
			Rows:    tableRows[1:],
		})
	}

	result.Sections = buildSections(lines)
	return result
}

func buildSections(lines []string) []docmodel.Section {
	if len(lines) == 0 {
		return []docmodel.Section{}
	}

	head := headerLineCount
	if head > len(lines) {
		head = len(lines)
	}

	sections := []docmodel.Section{
		{Type: docmodel.SectionHeader, Content: strings.Join(lines[:head], "\n")},
	}
	if len(lines) > head {
		sections = append(sections, docmodel.Section{
			Type:    docmodel.SectionBody,
			Content: strings.Join(lines[head:], "\n"),
		})
	}
	sections = append(sections, docmodel.Section{
		Type:    docmodel.SectionFooter,
		Content: footerMarker,
	})
	return sections
}

func splitCells(line string) []string {
	raw := strings.Split(line, tableDelimiter)
	cells := make([]string, 0, len(raw))
	for _, c := range raw {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			cells = append(cells, trimmed)
		}
	}
	return cells
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
