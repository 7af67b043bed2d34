package job

import (
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
)

// Service holds the shared queue state between handlers and the worker
// pool. RequestCount feeds the dispatcher's scale-up decision.
type Service struct {
	JobChannel        chan jobmodel.PipelineJob
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobmodel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan jobmodel.PipelineJob
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobmodel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}
