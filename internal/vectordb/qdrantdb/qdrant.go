package qdrantdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/nvasani/inspectapi/internal/adapter/utils"
	"github.com/nvasani/inspectapi/internal/domain/docmodel"
	"github.com/nvasani/inspectapi/pkg/logx"
)

type Config struct {
	Host      string
	Port      int
	UseTLS    bool
	PoolSize  uint
	Dimension uint64
}

type Client struct {
	q         *qdrant.Client
	dimension uint64
	logger    *logx.Logger
}

// NewClient connects to qdrant over grpc. The client is closed when ctx
// is cancelled.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	logger := logx.NewLogger("Qdrant")

	q, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		UseTLS:   cfg.UseTLS,
		PoolSize: cfg.PoolSize,
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client: ", "error:", err)
		return nil, err
	}

	c := &Client{q: q, dimension: cfg.Dimension, logger: logger}
	go c.closeOnDone(ctx)
	return c, nil
}

func (c *Client) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	c.logger.Info("Shutting down Qdrant")
	if err := c.q.Close(); err != nil {
		c.logger.Error("could not close Qdrant: ", "error:", err)
		return
	}
	c.logger.Info("Closed Qdrant")
}

func (c *Client) EnsureCollection(ctx context.Context, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := c.q.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return c.q.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (c *Client) UpsertChunks(ctx context.Context, collectionName string, documentID string, chunks []docmodel.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	ingestedAt := time.Now().Unix()
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(utils.GetNewUUID()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":        chunk.Text,
				"document_id": documentID,
				"chunk_index": chunk.Index,
				"ingested_at": ingestedAt,
			}),
		}
	}

	_, err := c.q.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}
