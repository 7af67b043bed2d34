package vectordb

import (
	"context"

	"github.com/nvasani/inspectapi/internal/domain/docmodel"
)

// Index is the contract the pipeline has on a vector store.
type Index interface {
	// EnsureCollection creates the target collection if it does not
	// exist yet; calling it again is a no-op.
	EnsureCollection(ctx context.Context, collectionName string) error

	// UpsertChunks writes one point per chunk: a generated id, the
	// vector and a payload carrying text, document id, chunk index and
	// ingestion timestamp.
	UpsertChunks(ctx context.Context, collectionName string, documentID string, chunks []docmodel.Chunk, vectors [][]float32) error
}
