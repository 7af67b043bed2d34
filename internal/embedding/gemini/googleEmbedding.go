package gemini

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nvasani/inspectapi/internal/embedding"
	"github.com/nvasani/inspectapi/pkg/logx"
)

const retryBackoff = 5 * time.Second

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logx.Logger
}

// NewEmbedder builds a Google embedding client with a fixed output
// dimensionality. The dimension matches the vector collection; changing
// one requires changing the other.
func NewEmbedder(ctx context.Context, apiKey string, modelName string, dimension int32) (embedding.Embedder, error) {
	logger := logx.NewLogger("google_embedding")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
		return nil, err
	}

	logger.Info("Google Embedding client created", "model", modelName, "dimension", dimension)
	return &client{genAi: c, model: modelName, dimension: dimension, logger: logger}, nil
}

// BatchEmbedding embeds all chunks in a single request. A rate-limit
// rejection gets one retry after a short backoff; everything else fails
// straight through.
func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value("traceId"), "chunks", len(chunks))

	if len(chunks) == 0 {
		return [][]float32{}, nil
	}

	res, err := c.doCall(ctx, toContents(chunks))
	if err != nil || res == nil {
		if isRateLimited(err) {
			log.Debug("Rate limit hit, retrying", "backoff", retryBackoff)
			time.Sleep(retryBackoff)
			res, err = c.doCall(ctx, toContents(chunks))
		}
		if err != nil {
			log.Error("Error getting embeddings from Google", "error", err)
			return nil, err
		}
		if res == nil {
			return nil, errors.New("embedding: empty response")
		}
	}

	results := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		results = append(results, r.Values)
	}
	return results, nil
}

func (c *client) doCall(ctx context.Context, contents []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &c.dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}

func toContents(chunks []string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contents
}

func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}
