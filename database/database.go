package database

import (
	"context"

	"github.com/reco-ai/knowledge-be/types"
)

// KnowledgeStore is the gateway to the external vector store. It is a single
// long-lived handle, constructed once and passed explicitly to every consumer.
// Construction performs idempotent create-if-absent schema setup; an existing
// collection is reused as-is.
//
// The store is safe to share across concurrent callers: inserts are
// append-only and no results are cached in-process.
type KnowledgeStore interface {
	// Insert stores the given units. An empty input is a no-op.
	Insert(ctx context.Context, units []types.KnowledgeUnit) error

	// Search returns up to topN nearest neighbors of the given vector,
	// in the store's own distance order. A nil or empty vector returns an
	// empty result set without issuing a request.
	Search(ctx context.Context, vector []float32, topN int) ([]types.Candidate, error)

	// Reset drops the collection entirely. Destructive and irreversible;
	// intended for maintenance and testing, never invoked by the query path.
	Reset(ctx context.Context) error
}
