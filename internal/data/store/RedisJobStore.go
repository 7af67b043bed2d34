package store

import (
	"context"
	"encoding/json"

	"github.com/nvasani/inspectapi/internal/config"
	"github.com/nvasani/inspectapi/internal/data/redisStore"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	"github.com/nvasani/inspectapi/pkg/logx"
)

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logx.Logger
}

// GetRedisJobStore returns a job store backed by Redis, or nil when the
// server is unreachable. Jobs expire after the configured TTL.
func GetRedisJobStore(ctx context.Context, opts redisStore.Options) *RedisJobStore {
	backing := redisStore.GetRedisStore(ctx, opts)
	if backing == nil {
		return nil
	}
	return &RedisJobStore{
		store:  backing,
		logger: logx.NewLogger("JobStore"),
	}
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job jobmodel.PipelineJob) error {
	log := s.logger.With("traceId", job.TraceId, "job Id", job.Id)
	log.Debug("saving job")
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, job.Id, data, config.RedisJobStoreTTL)
	if err == nil {
		log.Debug("Saved job to Redis")
	}
	return err
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (jobmodel.PipelineJob, bool) {
	var job jobmodel.PipelineJob
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "job Id", jobId)
	log.Debug("getting job")
	val, err := s.store.Get(ctx, jobId)
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		return job, false
	}

	err = json.Unmarshal([]byte(val), &job)
	if err != nil {
		return job, false
	}

	log.Debug("Job found in Redis")
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobID string) {
	err := s.store.Del(ctx, jobID)
	if err != nil {
		s.logger.Error("Error deleting job from Redis", "jobId", jobID)
		return
	}
	s.logger.Debug("Job deleted from Redis", "jobId", jobID)
}

func TestJobStore(store *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logx.NewLogger("test redis"),
	}
}
