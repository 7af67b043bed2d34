package adapter

import (
	"fmt"
	"time"

	"github.com/nvasani/inspectapi/internal/api"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobmodel.PipelineJob) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	return api.JobResponse{
		Id:        job.Id,
		Status:    string(job.Status),
		Progress:  job.Progress,
		Steps:     toStepResponses(job.Steps),
		Result:    toPipelineResponse(job),
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
	}
}

func toStepResponses(steps jobmodel.StepList) []api.StepResponse {
	if len(steps.Steps) == 0 {
		return nil
	}
	out := make([]api.StepResponse, 0, len(steps.Steps))
	for _, s := range steps.Steps {
		out = append(out, api.StepResponse{
			Id:         string(s.Id),
			Name:       s.Name,
			Status:     string(s.Status),
			DurationMs: s.DurationMs,
		})
	}
	return out
}

// toPipelineResponse returns nil until the run completes; callers get
// progress and steps in the meantime.
func toPipelineResponse(job jobmodel.PipelineJob) *api.PipelineResponse {
	if job.Result == nil {
		return nil
	}
	r := job.Result
	return &api.PipelineResponse{
		DocumentID:        r.DocumentID,
		Summary:           r.Summary,
		ExtractedData:     r.Extracted,
		Validation:        r.Validation,
		OCR:               r.OCR,
		Layout:            r.Layout,
		ChunkCount:        r.ChunkCount,
		EmbeddingDim:      r.EmbeddingDim,
		EmbeddingsPreview: r.EmbeddingsPreview,
		Stored:            r.Stored,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		Status:    string(api.JobStatusError),
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
