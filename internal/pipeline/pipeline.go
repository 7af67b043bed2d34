package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	"github.com/nvasani/inspectapi/internal/embedding"
	"github.com/nvasani/inspectapi/internal/metrics"
	"github.com/nvasani/inspectapi/internal/pipeline/chunker"
	"github.com/nvasani/inspectapi/internal/pipeline/validate"
	"github.com/nvasani/inspectapi/internal/vectordb"
	"github.com/nvasani/inspectapi/pkg/logx"
)

// progress checkpoints per completed stage
const (
	progressStarted    = 10
	progressOCR        = 30
	progressLayout     = 50
	progressExtraction = 70
	progressVector     = 90
	progressDone       = 100
)

// how many leading dimensions of the first chunk vector the response
// carries as a preview
const previewDims = 8

type OCRStage interface {
	Recognize(ctx context.Context, text string) (docmodel.OCRResult, error)
}

type LayoutStage interface {
	Parse(ocr docmodel.OCRResult) docmodel.LayoutResult
}

type FieldExtractor interface {
	Extract(ctx context.Context, layout docmodel.LayoutResult) (docmodel.ExtractedData, string, error)
}

// Service is the public contract of the orchestrator; workers and
// handlers call this and nothing below it.
type Service interface {
	ProcessDocument(ctx context.Context, job jobmodel.PipelineJob) jobmodel.PipelineJob
}

type Options struct {
	CollectionName string
	MaxChunkSize   int
	StageTimeout   time.Duration
}

type service struct {
	ocr       OCRStage
	layout    LayoutStage
	extractor FieldExtractor
	embedder  embedding.Embedder
	index     vectordb.Index
	jobs      jobmodel.JobStore
	opts      Options
	logger    *logx.Logger
}

// NewService wires the orchestrator. jobs may be nil for runs that have
// no persisted record; progress is then tracked in memory only.
func NewService(ocr OCRStage, layout LayoutStage, ex FieldExtractor, em embedding.Embedder, index vectordb.Index, jobs jobmodel.JobStore, opts Options) Service {
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = 500
	}
	if opts.StageTimeout <= 0 {
		opts.StageTimeout = 30 * time.Second
	}
	return &service{
		ocr:       ocr,
		layout:    layout,
		extractor: ex,
		embedder:  em,
		index:     index,
		jobs:      jobs,
		opts:      opts,
		logger:    logx.NewLogger("Pipeline"),
	}
}

// ProcessDocument runs the fixed stage sequence against the job's
// document text. Steps execute strictly in order since each consumes
// the previous stage's output; on a stage-fatal error the job is
// finalized as failed with progress frozen at its last checkpoint. The
// job is never left running when control returns to the caller.
func (s *service) ProcessDocument(ctx context.Context, job jobmodel.PipelineJob) jobmodel.PipelineJob {
	log := s.logger.With("traceId", job.TraceId, "jobId", job.Id)
	start := time.Now()

	job.Status = jobmodel.JobStatusRunning
	job.Steps = jobmodel.NewStepList()
	job.SetProgress(progressStarted)
	s.persist(ctx, job)

	var (
		ocrResult    docmodel.OCRResult
		layoutResult docmodel.LayoutResult
		extracted    docmodel.ExtractedData
		summary      string
		vectorOut    vectorOutcome
	)

	err := s.runStep(ctx, &job, jobmodel.StepOCR, progressOCR, func(stageCtx context.Context) error {
		var stepErr error
		ocrResult, stepErr = s.ocr.Recognize(stageCtx, job.Payload.DocumentText)
		return stepErr
	})
	if err != nil {
		return s.failJob(ctx, job, start, "OCR_FAILURE", err)
	}
	log.Debug("OCR complete", "blocks", len(ocrResult.Blocks), "confidence", ocrResult.Confidence)

	err = s.runStep(ctx, &job, jobmodel.StepLayout, progressLayout, func(stageCtx context.Context) error {
		layoutResult = s.layout.Parse(ocrResult)
		return nil
	})
	if err != nil {
		return s.failJob(ctx, job, start, "LAYOUT_FAILURE", err)
	}
	log.Debug("Layout complete", "keyValues", len(layoutResult.KeyValues), "tables", len(layoutResult.Tables))

	err = s.runStep(ctx, &job, jobmodel.StepExtraction, progressExtraction, func(stageCtx context.Context) error {
		var stepErr error
		extracted, summary, stepErr = s.extractor.Extract(stageCtx, layoutResult)
		return stepErr
	})
	if err != nil {
		return s.failJob(ctx, job, start, "EXTRACTION_FAILURE", err)
	}

	err = s.runStep(ctx, &job, jobmodel.StepVector, progressVector, func(stageCtx context.Context) error {
		vectorOut = s.embedAndStore(stageCtx, job.Id, layoutResult.Text)
		return vectorOut.err
	})
	if err != nil {
		log.Error("Embedding/storage stage failed", "embedded", len(vectorOut.vectors), "error", err)
		return s.failJob(ctx, job, start, "VECTOR_FAILURE", err)
	}

	var validation docmodel.ValidationResult
	err = s.runStep(ctx, &job, jobmodel.StepValidation, progressDone, func(stageCtx context.Context) error {
		validation = validate.Check(extracted)
		return nil
	})
	if err != nil {
		return s.failJob(ctx, job, start, "VALIDATION_FAILURE", err)
	}

	job.Result = &docmodel.PipelineResult{
		DocumentID: job.Id,
		Summary:    summary,
		Extracted:  extracted,
		Validation: validation,
		OCR: docmodel.OCRSummary{
			Confidence: ocrResult.Confidence,
			BlockCount: len(ocrResult.Blocks),
		},
		Layout: docmodel.LayoutSummary{
			SectionCount:  len(layoutResult.Sections),
			TableCount:    len(layoutResult.Tables),
			KeyValueCount: len(layoutResult.KeyValues),
		},
		ChunkCount:        len(vectorOut.chunks),
		EmbeddingDim:      vectorOut.dimension(),
		EmbeddingsPreview: vectorOut.preview(),
		Stored:            vectorOut.stored,
	}
	job.Status = jobmodel.JobStatusCompleted
	job.SetProgress(progressDone)
	job.EndTime = time.Now()
	job.DurationMs = time.Since(start).Milliseconds()
	s.persist(ctx, job)
	metrics.CapturePipelineMetrics(string(job.Status), time.Since(start))

	log.Info("Pipeline run complete", "durationMs", job.DurationMs, "passed", validation.Passed)
	return job
}

// runStep drives one entry of the fixed step list through
// processing→{completed,error}, stamps the checkpoint and persists
// intermediate progress.
func (s *service) runStep(ctx context.Context, job *jobmodel.PipelineJob, id jobmodel.StepID, checkpoint int, fn func(context.Context) error) error {
	if err := job.Steps.Advance(id, jobmodel.StepProcessing, 0); err != nil {
		return err
	}

	stageCtx, cancel := context.WithTimeout(ctx, s.opts.StageTimeout)
	defer cancel()

	start := time.Now()
	err := fn(stageCtx)
	elapsed := time.Since(start)
	metrics.CaptureStageMetrics(string(id), elapsed)

	if err != nil {
		if advErr := job.Steps.Advance(id, jobmodel.StepError, elapsed); advErr != nil {
			s.logger.Error("step bookkeeping failed", "step", id, "error", advErr)
		}
		return err
	}

	if err := job.Steps.Advance(id, jobmodel.StepCompleted, elapsed); err != nil {
		return err
	}
	job.SetProgress(checkpoint)
	s.persist(ctx, *job)
	return nil
}

func (s *service) failJob(ctx context.Context, job jobmodel.PipelineJob, start time.Time, label string, err error) jobmodel.PipelineJob {
	s.logger.Error(label, "jobId", job.Id, "error", err)

	job.Status = jobmodel.JobStatusFailed
	job.Error = jobmodel.JobError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Retry:   true,
	}
	job.EndTime = time.Now()
	job.DurationMs = time.Since(start).Milliseconds()
	job.Result = nil
	s.persist(ctx, job)
	metrics.CapturePipelineMetrics(string(job.Status), time.Since(start))
	return job
}

func (s *service) persist(ctx context.Context, job jobmodel.PipelineJob) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.SaveJob(ctx, job); err != nil {
		s.logger.Error("Failed to persist job progress", "jobId", job.Id, "error", err)
	}
}

type vectorOutcome struct {
	chunks  []docmodel.Chunk
	vectors [][]float32
	stored  bool
	err     error
}

func (v vectorOutcome) dimension() int {
	if len(v.vectors) == 0 {
		return 0
	}
	return len(v.vectors[0])
}

func (v vectorOutcome) preview() []float32 {
	if len(v.vectors) == 0 {
		return nil
	}
	first := v.vectors[0]
	if len(first) <= previewDims {
		return first
	}
	return first[:previewDims]
}

// embedAndStore chunks the document, embeds the whole batch in one
// request and upserts the points. Vectors already computed are kept in
// the outcome even when collection setup or the upsert fails, so the
// caller can still observe them.
func (s *service) embedAndStore(ctx context.Context, documentID string, text string) vectorOutcome {
	out := vectorOutcome{}

	out.chunks = chunker.Split(text, s.opts.MaxChunkSize)
	if len(out.chunks) == 0 {
		return out
	}

	texts := make([]string, len(out.chunks))
	for i, c := range out.chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		out.err = err
		return out
	}
	out.vectors = vectors

	if err := s.index.EnsureCollection(ctx, s.opts.CollectionName); err != nil {
		out.err = err
		return out
	}
	if err := s.index.UpsertChunks(ctx, s.opts.CollectionName, documentID, out.chunks, vectors); err != nil {
		out.err = err
		return out
	}
	out.stored = true
	return out
}
