package jobmodel

import (
	"context"
	"time"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

type JobStatus string
type JobType string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"

	JobTypeText     JobType = "Text"
	JobTypeDocument JobType = "Document"
)

// PipelineJob is the unit of work the orchestrator operates on. It is
// created before the pipeline runs and mutated after every stage; once
// status reaches completed or failed it is terminal.
type PipelineJob struct {
	Id          string                   `json:"id"`
	TraceId     string                   `json:"trace_id"`
	JobType     JobType                  `json:"job_type"`
	Status      JobStatus                `json:"status"`
	Progress    int                      `json:"progress"`
	Steps       StepList                 `json:"steps"`
	Payload     JobPayload               `json:"job_payload"`
	Result      *docmodel.PipelineResult `json:"result,omitempty"`
	Error       JobError                 `json:"error,omitempty"`
	CreatedTime time.Time                `json:"created_time"`
	EndTime     time.Time                `json:"end_time,omitempty"`
	DurationMs  int64                    `json:"duration_ms,omitempty"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentText string `json:"document_text,omitempty"`

	UploadFileName string `json:"upload_file_name,omitempty"`
	UploadPath     string `json:"upload_path,omitempty"`
}

// SetProgress enforces the monotonic non-decreasing progress invariant:
// a checkpoint lower than the current value is ignored.
func (j *PipelineJob) SetProgress(pct int) {
	if pct > 100 {
		pct = 100
	}
	if pct > j.Progress {
		j.Progress = pct
	}
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (PipelineJob, bool)
	SaveJob(ctx context.Context, job PipelineJob) error
	DeleteJob(ctx context.Context, jobId string)
}
