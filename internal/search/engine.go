package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks imagesearch/internal/search Engine

import (
	"context"
	"fmt"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/embedding"
	"imagesearch/internal/imagefile"
	"imagesearch/internal/storage"
	"imagesearch/internal/vectorstore"
)

const (
	// DefaultLimit is the result count when the request leaves Limit at zero.
	DefaultLimit = 20
	// MaxLimit caps how many results a single request may ask for.
	MaxLimit = 100
)

// Engine answers similarity searches over the indexed images.
type Engine interface {
	Search(ctx context.Context, req Request) (*Response, error)
}

type engine struct {
	embedder    embedding.Provider
	vectorStore vectorstore.VectorStore
	imageRepo   storage.ImageStore
	tagRepo     storage.TagStore
	collection  string
}

// NewEngine creates a search engine over the given stores.
func NewEngine(
	embedder embedding.Provider,
	vectorStore vectorstore.VectorStore,
	imageRepo storage.ImageStore,
	tagRepo storage.TagStore,
	collection string,
) Engine {
	return &engine{
		embedder:    embedder,
		vectorStore: vectorStore,
		imageRepo:   imageRepo,
		tagRepo:     tagRepo,
		collection:  collection,
	}
}

// Search embeds the query image, finds the nearest vectors and joins each hit
// with its metadata and tags. Hits without a finalized metadata row are
// dropped, so records mid-indexing never surface in results. The returned
// images keep the vector store's descending similarity order.
func (e *engine) Search(ctx context.Context, req Request) (*Response, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := imagefile.Decode(req.Image); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	vector, err := e.embedder.EmbedImage(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to compute embedding: %w", err)
	}

	var filters map[string]any
	if req.SourceDomain != "" {
		filters = map[string]any{"source_domain": req.SourceDomain}
	}
	hits, err := e.vectorStore.Search(ctx, e.collection, vector, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	if len(hits) == 0 {
		return &Response{SimilarImages: []SimilarImage{}}, nil
	}

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.PointID
	}

	records, err := e.imageRepo.GetIndexedBatch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load image metadata: %w", err)
	}
	tagsByImage, err := e.tagRepo.ListByImages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load image tags: %w", err)
	}

	images := make([]SimilarImage, 0, len(hits))
	for _, hit := range hits {
		record, ok := records[hit.PointID]
		if !ok {
			// Vector exists but the row is missing or still pending
			logger.WarnContext(ctx, "dropping result without finalized metadata",
				"uuid", hit.PointID, "score", hit.Score)
			continue
		}

		tags := make([]Tag, 0, len(tagsByImage[hit.PointID]))
		for _, tag := range tagsByImage[hit.PointID] {
			tags = append(tags, Tag{Tag: tag.Tag, Confidence: tag.Confidence})
		}

		images = append(images, SimilarImage{
			UUID:         record.UUID,
			Score:        hit.Score,
			Filename:     record.Filename,
			SourceURL:    record.SourceURL,
			SourceDomain: record.SourceDomain,
			Dimensions:   record.Dimensions,
			FileSize:     record.FileSize,
			CreatedAt:    record.CreatedAt,
			ThumbnailURL: "/api/image/" + record.UUID,
			Tags:         tags,
		})
	}

	return &Response{
		Keywords:      aggregateKeywords(images),
		SimilarImages: images,
		TotalFound:    len(images),
	}, nil
}
