package store

import (
	"context"
	"sync"

	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	"github.com/nvasani/inspectapi/pkg/logx"
)

var inMemLogger = logx.NewLogger("InMem JobStore")

// InMemoryJobStore is the fallback when Redis is unavailable. Jobs live
// for the process lifetime only.
type InMemoryJobStore struct {
	jobMutex *sync.RWMutex
	jobMap   map[string]jobmodel.PipelineJob
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		jobMutex: new(sync.RWMutex),
		jobMap:   make(map[string]jobmodel.PipelineJob),
	}
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, jobToStored jobmodel.PipelineJob) error {

	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	store.jobMap[jobToStored.Id] = jobToStored
	inMemLogger.Debug("Saved job to store", "jobId", jobToStored.Id)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobmodel.PipelineJob, bool) {
	store.jobMutex.RLock()
	defer store.jobMutex.RUnlock()
	result, found := store.jobMap[jobId]
	return result, found
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	delete(store.jobMap, jobID)
}
