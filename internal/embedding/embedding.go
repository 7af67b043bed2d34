package embedding

import "context"

// Embedder computes fixed-dimension vectors. BatchEmbedding issues one
// request for the whole batch; callers never embed chunk by chunk.
type Embedder interface {
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
