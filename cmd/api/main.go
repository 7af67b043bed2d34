package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nvasani/inspectapi/internal/config"
	"github.com/nvasani/inspectapi/internal/data/redisStore"
	"github.com/nvasani/inspectapi/internal/data/store"
	"github.com/nvasani/inspectapi/internal/domain/jobmodel"
	embeddinggemini "github.com/nvasani/inspectapi/internal/embedding/gemini"
	"github.com/nvasani/inspectapi/internal/handlers"
	"github.com/nvasani/inspectapi/internal/job"
	"github.com/nvasani/inspectapi/internal/middleware"
	"github.com/nvasani/inspectapi/internal/pipeline"
	"github.com/nvasani/inspectapi/internal/pipeline/extract"
	extractgemini "github.com/nvasani/inspectapi/internal/pipeline/extract/gemini"
	"github.com/nvasani/inspectapi/internal/pipeline/layout"
	"github.com/nvasani/inspectapi/internal/pipeline/ocr"
	"github.com/nvasani/inspectapi/internal/server"
	"github.com/nvasani/inspectapi/internal/vectordb/qdrantdb"
	"github.com/nvasani/inspectapi/internal/worker"
	"github.com/nvasani/inspectapi/pkg/logx"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logx.Init(config.IS_PROD, config.LOG_LEVEL_PROD)
	var logger = logx.NewLogger("main")

	//config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	flag.StringVar(&listenAddr, "listen-addr", cfg.ListenAddr, "server listen address")
	flag.Parse()

	middleware.InitAuth(cfg)

	//init buffered job channel
	jobChannel := make(chan jobmodel.PipelineJob, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore: store.GetRedisJobStore(serviceContext, redisStore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       config.RedisJobStoreDB,
		}),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil {
		logger.Error("Redis job store is offline, falling back to in-memory store")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	vectorDB, err := qdrantdb.NewClient(serviceContext, qdrantdb.Config{
		Host:      cfg.QdrantHost,
		Port:      cfg.QdrantPort,
		UseTLS:    cfg.QdrantUseTLS,
		PoolSize:  config.QdrantPoolSize,
		Dimension: uint64(cfg.EmbeddingDim),
	})
	if err != nil {
		logger.Error("Failed to connect to vector store. Shutting down.", "error", err)
		return
	}
	embeddingService, err := embeddinggemini.NewEmbedder(serviceContext, cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	if err != nil {
		logger.Error("Failed to initialize embedding service. Shutting down.", "error", err)
		return
	}
	generator, err := extractgemini.NewGenerator(serviceContext, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("Failed to initialize language model. Shutting down.", "error", err)
		return
	}

	pipelineService := pipeline.NewService(
		ocr.NewHeuristic(),
		layout.NewParser(),
		extract.NewExtractor(generator),
		embeddingService,
		vectorDB,
		serviceConfig.JobStore,
		pipeline.Options{
			CollectionName: cfg.CollectionName,
			MaxChunkSize:   cfg.MaxChunkSize,
			StageTimeout:   cfg.StageTimeout,
		},
	)

	handlers.InitJobHandler(service, pipelineService)

	//init worker pool
	worker.InitServices(service, pipelineService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
