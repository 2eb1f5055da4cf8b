package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks imagesearch/internal/vectorstore VectorStore

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the vector store could not be reached.
// Callers may retry the operation.
var ErrUnavailable = errors.New("vector store unavailable")

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
// Results are returned by descending cosine similarity with unique ids.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
// Implementations must guarantee no duplicate ids in search results and
// surface unavailable stores as errors the caller can retry.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a cosine similarity search, returning at most k results
	// ordered by descending score. filters optionally restricts candidates
	// (supported key: "source_domain").
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error

	// Exists reports whether a point with the given ID is present.
	Exists(ctx context.Context, collection string, id string) (bool, error)

	// CollectionExists checks if a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// EnsureCollection ensures a collection exists with the specified vector
	// size, validating the size if the collection is already present.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
}
