package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of pipeline jobs waiting in the queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start a worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var pipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_run_duration_seconds",
	Help:    "Total wall time of one pipeline run.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"status"})

var stageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_stage_latency_seconds",
	Help:    "Latency per pipeline stage, external calls included.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"stage"})

// HttpStatusRecorder remembers the status code a handler wrote so the
// request counter can label it. WriteHeader shadows the embedded
// writer's method; without the override every request would be counted
// as 200.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}

func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func CaptureStageMetrics(stage string, timeElapsed time.Duration) {
	stageLatency.WithLabelValues(stage).Observe(timeElapsed.Seconds())
}

func CapturePipelineMetrics(status string, timeElapsed time.Duration) {
	pipelineDuration.WithLabelValues(status).Observe(timeElapsed.Seconds())
}
