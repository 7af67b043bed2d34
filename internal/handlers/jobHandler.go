package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nvasani/inspectapi/internal/api"
	"github.com/nvasani/inspectapi/internal/config"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	"github.com/nvasani/inspectapi/internal/job"
	"github.com/nvasani/inspectapi/internal/metrics"
	"github.com/nvasani/inspectapi/internal/pipeline"
	"github.com/nvasani/inspectapi/pkg/logx"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logx.Logger
)

type JobHandler struct {
	service  *job.Service
	pipeline pipeline.Service
}

func InitJobHandler(jobService *job.Service, pipelineService pipeline.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, pipeline: pipelineService}

		logJH = logx.NewLogger("JobHandler")
		logRH = logx.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

// RunPipeline executes the full pipeline inline for the synchronous
// endpoint. The finished job is returned to the caller directly; the
// job store still receives every intermediate state.
func RunPipeline(ctx context.Context, newJob newJobData) jobmodel.PipelineJob {
	_job := jobmodel.PipelineJob{
		Id:          newJob.id,
		TraceId:     newJob.traceId,
		JobType:     jobmodel.JobTypeText,
		Status:      jobmodel.JobStatusPending,
		Steps:       jobmodel.NewStepList(),
		CreatedTime: time.Now(),
	}
	_job.Payload.DocumentText = newJob.text

	runCtx, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()
	return handlerInstance.pipeline.ProcessDocument(runCtx, _job)
}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobmodel.PipelineJob, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func ValidateProcessRequest(req api.ProcessRequest) bool {
	if handlerInstance == nil {
		return false
	}
	return req.Text != ""
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobmodel.PipelineJob{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobmodel.JobStatusPending
	_job.Steps = jobmodel.NewStepList()
	_job.JobType = jobmodel.JobTypeDocument
	_job.Payload.UploadFileName = newJob.documentName
	_job.Payload.UploadPath = newJob.documentPath

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//we will start a new worker every 10 requests - can also be configured
	//file extraction plus the full pipeline takes time - external system calls
	//worker will be removed if it has idle time - so it should be ok
	//this also allows us to only keep 1 worker running at most times therefore cutting resource spend

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
