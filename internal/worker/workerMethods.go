package worker

import (
	"context"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/nvasani/inspectapi/internal/config"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	"github.com/nvasani/inspectapi/internal/metrics"
	"github.com/nvasani/inspectapi/internal/pipeline/ocr"
)

func executeJob(currentJob jobmodel.PipelineJob) {
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, currentJob.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.PipelineTimeout)
	defer cancel()
	log := logger.With("traceId", currentJob.TraceId, "jobId", currentJob.Id)
	log.Debug("Processing job")

	if currentJob.JobType == jobmodel.JobTypeDocument {
		text, err := extractUpload(currentJob)
		if err != nil {
			log.Error("Upload extraction failed", "file", currentJob.Payload.UploadFileName, "error", err)
			failJob(ctx, currentJob, err)
			return
		}
		currentJob.Payload.DocumentText = text
	}

	// the orchestrator owns status transitions and persistence from here
	_pipelineService.ProcessDocument(ctx, currentJob)
}

// extractUpload pulls plain text out of the staged upload and removes
// the temp file regardless of outcome.
func extractUpload(currentJob jobmodel.PipelineJob) (string, error) {
	defer func() {
		if currentJob.Payload.UploadPath != "" {
			if err := os.Remove(currentJob.Payload.UploadPath); err != nil {
				logger.Warn("Failed to remove staged upload", "path", currentJob.Payload.UploadPath, "error", err)
			}
		}
	}()
	return ocr.ExtractFile(currentJob.Payload.UploadPath)
}

func failJob(ctx context.Context, currentJob jobmodel.PipelineJob, err error) {
	currentJob.Status = jobmodel.JobStatusFailed
	currentJob.Error = jobmodel.JobError{
		Code:    http.StatusUnprocessableEntity,
		Message: err.Error(),
		Retry:   false,
	}
	currentJob.EndTime = time.Now()
	if saveErr := _jobService.JobStore.SaveJob(ctx, currentJob); saveErr != nil {
		logger.Error("Failed to update status in Redis", "err", saveErr)
	}
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

// retireIfAboveFloor reserves one retirement slot via compare-and-swap
// so concurrent idle workers can never shrink the pool below
// minWorkerCount.
func retireIfAboveFloor() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= atomic.LoadInt64(&minWorkerCount) {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			workerWaitGroup.Done()
			logger.Info("Removed worker ", "reason", "Idle worker timeout", "workerCount", count-1)
			metrics.DecrementActiveWorkerCount()
			return true
		}
	}
}
