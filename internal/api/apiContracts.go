package api

import (
	"time"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Status    string            `json:"status" example:"completed"`
	Progress  int               `json:"progress" example:"70"`
	Steps     []StepResponse    `json:"steps,omitempty"`
	Result    *PipelineResponse `json:"result,omitempty"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type StepResponse struct {
	Id         string `json:"id" example:"ocr"`
	Name       string `json:"name" example:"OCR"`
	Status     string `json:"status" example:"completed"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// PipelineResponse is the externally visible result of a finished run.
type PipelineResponse struct {
	DocumentID        string                    `json:"document_id"`
	Summary           string                    `json:"summary,omitempty"`
	ExtractedData     docmodel.ExtractedData    `json:"extracted_data"`
	Validation        docmodel.ValidationResult `json:"validation"`
	OCR               docmodel.OCRSummary       `json:"ocr"`
	Layout            docmodel.LayoutSummary    `json:"layout"`
	ChunkCount        int                       `json:"chunk_count"`
	EmbeddingDim      int                       `json:"embedding_dim"`
	EmbeddingsPreview []float32                 `json:"embeddings_preview,omitempty"`
	Stored            bool                      `json:"stored"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type ProcessRequest struct {
	Text  string `json:"text" validate:"required"`
	JobId string `json:"job_id,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
