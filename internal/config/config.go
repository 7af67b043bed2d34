package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//embeddings - the Gemini embedding model is truncated to this dimensionality
	EmbeddingOutputDimensionality int32 = 1536
	InspectionCollection                = "inspection-chunks"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	//WriteTimeout must cover a full synchronous pipeline run plus
	//response encoding, or slow /process responses get cut off
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = PipelineTimeout + 30*time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantGrpcPort = 6334
	QdrantUseTLS   = false
	QdrantPoolSize = 1

	//pipeline
	StageTimeout    = 30 * time.Second
	PipelineTimeout = 120 * time.Second
	MaxChunkSize    = 500
	MinChunkChars   = 20

	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	//redis
	defaultRedisAddr = "127.0.0.1:6379"

	//redis has 16 DBs we can use
	RedisJobStoreDB = 0

	RedisJobStoreTTL = 24 * time.Hour
)

// Config is the explicit runtime configuration handed to constructors at
// startup. Nothing outside this package reads the process environment.
type Config struct {
	ListenAddr string

	AuthToken    string
	NoAuthBypass bool

	RedisAddr     string
	RedisPassword string

	QdrantHost   string
	QdrantPort   int
	QdrantUseTLS bool

	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string

	CollectionName string
	EmbeddingDim   int32

	MaxChunkSize  int
	MinChunkChars int

	StageTimeout    time.Duration
	PipelineTimeout time.Duration
}

// Load reads the environment once and returns a validated Config.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      ServerListenAddr,
		AuthToken:       os.Getenv("AUTH_TOKEN"),
		NoAuthBypass:    os.Getenv("NO_AUTH_BYPASS") == "true",
		RedisAddr:       envOr("REDIS_ADDR", defaultRedisAddr),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		QdrantHost:      envOr("QDRANT_HOST", "localhost"),
		QdrantPort:      envIntOr("QDRANT_PORT", QdrantGrpcPort),
		QdrantUseTLS:    QdrantUseTLS,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     GeminiModelName,
		EmbeddingModel:  GoogleEmbeddingModel,
		CollectionName:  InspectionCollection,
		EmbeddingDim:    EmbeddingOutputDimensionality,
		MaxChunkSize:    MaxChunkSize,
		MinChunkChars:   MinChunkChars,
		StageTimeout:    StageTimeout,
		PipelineTimeout: PipelineTimeout,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return errors.New("config: GEMINI_API_KEY is required")
	}
	if c.AuthToken == "" && !c.NoAuthBypass {
		return errors.New("config: AUTH_TOKEN is required (or set NO_AUTH_BYPASS=true)")
	}
	if c.EmbeddingDim <= 0 {
		return errors.New("config: embedding dimension must be positive")
	}
	if c.MaxChunkSize <= c.MinChunkChars {
		return errors.New("config: max chunk size must exceed min chunk length")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
