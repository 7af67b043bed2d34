package docmodel

// BoundingBox is the pixel-space rectangle a text block was read from.
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type TextBlock struct {
	Text       string      `json:"text"`
	Box        BoundingBox `json:"box"`
	Confidence float64     `json:"confidence"`
}

// OCRResult is immutable once produced. Text is never nil-ish: an empty
// document yields an empty string and an empty block list.
type OCRResult struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	Blocks     []TextBlock `json:"blocks"`
}

type SectionType string

const (
	SectionHeader SectionType = "header"
	SectionBody   SectionType = "body"
	SectionFooter SectionType = "footer"
)

type Section struct {
	Type    SectionType `json:"type"`
	Content string      `json:"content"`
}

type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type KeyValue struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// LayoutResult is derived solely from an OCRResult.
type LayoutResult struct {
	Text      string     `json:"text"`
	Sections  []Section  `json:"sections"`
	Tables    []Table    `json:"tables"`
	KeyValues []KeyValue `json:"key_values"`
}

type Entity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// ExtractedData holds the structured fields pulled out of an inspection
// document. A field absent from the source document stays empty; the
// extraction prompt forbids fabricating values for missing fields.
type ExtractedData struct {
	Supplier       string   `json:"supplier,omitempty"`
	Buyer          string   `json:"buyer,omitempty"`
	Product        string   `json:"product,omitempty"`
	InvoiceNo      string   `json:"invoice_no,omitempty"`
	ContainerNo    string   `json:"container_no,omitempty"`
	HSCode         string   `json:"hs_code,omitempty"`
	Quantity       string   `json:"quantity,omitempty"`
	Weight         string   `json:"weight,omitempty"`
	Amount         string   `json:"amount,omitempty"`
	InspectionDate string   `json:"inspection_date,omitempty"`
	IssueDate      string   `json:"issue_date,omitempty"`
	Findings       []string `json:"findings,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	Entities       []Entity `json:"entities,omitempty"`
}

// ValidationResult never mutates the ExtractedData it was derived from.
// Errors are blocking, warnings are not; Passed depends on errors only.
type ValidationResult struct {
	Passed   bool     `json:"passed"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Chunk is an ephemeral bounded-length text segment used only to request
// embeddings.
type Chunk struct {
	Index int    `json:"chunk_index"`
	Text  string `json:"text"`
}

type OCRSummary struct {
	Confidence float64 `json:"confidence"`
	BlockCount int     `json:"block_count"`
}

type LayoutSummary struct {
	SectionCount  int `json:"section_count"`
	TableCount    int `json:"table_count"`
	KeyValueCount int `json:"key_value_count"`
}

// PipelineResult is the aggregated output of a completed run. It is set
// on the job only when every stage finished; a failed run carries no
// partial result.
type PipelineResult struct {
	DocumentID        string           `json:"document_id"`
	Summary           string           `json:"summary"`
	Extracted         ExtractedData    `json:"extracted_data"`
	Validation        ValidationResult `json:"validation"`
	OCR               OCRSummary       `json:"ocr"`
	Layout            LayoutSummary    `json:"layout"`
	ChunkCount        int              `json:"chunk_count"`
	EmbeddingDim      int              `json:"embedding_dim"`
	EmbeddingsPreview []float32        `json:"embeddings_preview,omitempty"`
	Stored            bool             `json:"stored"`
}
