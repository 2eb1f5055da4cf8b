package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_indexer.go -package=mocks imagesearch/internal/indexer Indexer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/embedding"
	"imagesearch/internal/imagefile"
	"imagesearch/internal/storage"
	"imagesearch/internal/vectorstore"
)

// TagInput is a weighted tag supplied alongside an image to index.
type TagInput struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
}

// Job describes one image to index.
type Job struct {
	// UUID identifies the image. When empty a new UUIDv4 is generated;
	// passing an existing id re-indexes that image with upsert semantics.
	UUID      string
	Filename  string
	SourceURL string
	Data      []byte
	Tags      []TagInput
}

// BatchStats summarizes a batch indexing run.
type BatchStats struct {
	Total   int
	Indexed int
	Failed  int
}

// Indexer is the write-side API consumed by the HTTP layer.
type Indexer interface {
	IndexImage(ctx context.Context, job Job) (string, error)
	IndexBatch(ctx context.Context, jobs []Job) (BatchStats, error)
	Delete(ctx context.Context, imageID string) error
}

// Pipeline orchestrates the dual write of image metadata and embedding vectors.
//
// Write order per image: pending metadata row -> tags -> files -> vector upsert
// -> mark indexed. The final step is the visibility boundary; a failure before
// it leaves the record pending and excluded from query results until the
// reconciliation pass picks it up.
type Pipeline struct {
	imageRepo   storage.ImageStore
	tagRepo     storage.TagStore
	embedder    embedding.Provider
	vectorStore vectorstore.VectorStore
	files       *imagefile.Store
	collection  string
	workers     int
	logger      *slog.Logger
}

// NewPipeline creates a new indexing pipeline.
// workers bounds the concurrency of batch indexing; embedding computation is
// the dominant cost, so the pool size governs indexing throughput.
func NewPipeline(
	imageRepo storage.ImageStore,
	tagRepo storage.TagStore,
	embedder embedding.Provider,
	vectorStore vectorstore.VectorStore,
	files *imagefile.Store,
	collection string,
	workers int,
) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		imageRepo:   imageRepo,
		tagRepo:     tagRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		files:       files,
		collection:  collection,
		workers:     workers,
		logger:      slog.Default(),
	}
}

// IndexImage indexes a single image and returns its uuid.
// Re-indexing an existing uuid fully replaces metadata, tags and vector.
func (p *Pipeline) IndexImage(ctx context.Context, job Job) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateTags(job.Tags); err != nil {
		return "", err
	}

	// Decode before any writes; malformed input is rejected immediately
	img, err := imagefile.Decode(job.Data)
	if err != nil {
		return "", err
	}

	sourceDomain, err := domainFromURL(job.SourceURL)
	if err != nil {
		return "", err
	}

	imageID := job.UUID
	if imageID == "" {
		imageID = uuid.New().String()
	}

	// Embedding is computed up front so a provider failure leaves no
	// partial record behind.
	vector, err := p.embedder.EmbedImage(ctx, job.Data)
	if err != nil {
		return "", fmt.Errorf("failed to compute embedding: %w", err)
	}

	// On re-index, remove the vector from the previous run before the
	// metadata reset. A pending row can then only ever pair with a vector
	// written by this run, so reconciliation never finalizes a record
	// against an outdated vector.
	if job.UUID != "" {
		if err := p.vectorStore.Delete(ctx, p.collection, []string{imageID}); err != nil {
			return "", fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
		}
	}

	record := &storage.ImageRecord{
		UUID:         imageID,
		Filename:     job.Filename,
		SourceURL:    job.SourceURL,
		SourceDomain: sourceDomain,
		FileSize:     int64(len(job.Data)),
		Dimensions:   imagefile.Dimensions(img),
	}
	if err := p.imageRepo.UpsertPending(ctx, record); err != nil {
		return "", fmt.Errorf("failed to write pending metadata: %w", err)
	}

	tags := make([]storage.TagRecord, len(job.Tags))
	for i, tag := range job.Tags {
		tags[i] = storage.TagRecord{
			ImageUUID:  imageID,
			Tag:        tag.Tag,
			Confidence: tag.Confidence,
		}
	}
	if err := p.tagRepo.ReplaceTags(ctx, imageID, tags); err != nil {
		return "", fmt.Errorf("failed to write tags: %w", err)
	}

	if _, err := p.files.SaveOriginal(imageID, job.Data); err != nil {
		return "", fmt.Errorf("failed to store original: %w", err)
	}
	if _, err := p.files.SaveThumbnail(imageID, img); err != nil {
		return "", fmt.Errorf("failed to store thumbnail: %w", err)
	}

	point := vectorstore.Point{
		ID:  imageID,
		Vec: vector,
		Meta: map[string]any{
			"source_domain": sourceDomain,
			"filename":      job.Filename,
		},
	}
	if err := p.vectorStore.Upsert(ctx, p.collection, []vectorstore.Point{point}); err != nil {
		// Record stays pending and invisible to queries until reconciled
		logger.WarnContext(ctx, "vector write failed, record left pending",
			"uuid", imageID, "error", err)
		return "", fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}

	if err := p.imageRepo.MarkIndexed(ctx, imageID); err != nil {
		return "", fmt.Errorf("failed to finalize record: %w", err)
	}

	logger.InfoContext(ctx, "indexed image",
		"uuid", imageID, "filename", job.Filename, "source_domain", sourceDomain, "tags", len(tags))
	return imageID, nil
}

// IndexBatch indexes many images through a bounded worker pool, so embedding
// computation pipelines concurrently with store writes. Per-job errors are
// logged and counted; the batch itself only fails on context cancellation.
func (p *Pipeline) IndexBatch(ctx context.Context, jobs []Job) (BatchStats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	stats := BatchStats{Total: len(jobs)}
	if len(jobs) == 0 {
		return stats, nil
	}

	jobCh := make(chan Job)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				_, err := p.IndexImage(ctx, job)

				mu.Lock()
				if err != nil {
					stats.Failed++
				} else {
					stats.Indexed++
				}
				mu.Unlock()

				if err != nil {
					logger.ErrorContext(ctx, "failed to index image",
						"filename", job.Filename, "error", err)
				}
			}
		}()
	}

	var cancelled error
feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()

	logger.InfoContext(ctx, "batch indexing completed",
		"total", stats.Total, "indexed", stats.Indexed, "failed", stats.Failed)

	if cancelled != nil {
		return stats, cancelled
	}
	return stats, nil
}

// Delete removes an image from both stores and from disk.
// The vector entry goes first so a partial failure can only leave an
// unreferenced metadata row, never a dangling vector.
func (p *Pipeline) Delete(ctx context.Context, imageID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := p.vectorStore.Delete(ctx, p.collection, []string{imageID}); err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}

	if err := p.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	if err := p.files.Remove(imageID); err != nil {
		logger.WarnContext(ctx, "failed to remove image files", "uuid", imageID, "error", err)
	}

	logger.InfoContext(ctx, "deleted image", "uuid", imageID)
	return nil
}

// validateTags rejects empty tag names and out-of-range confidences.
func validateTags(tags []TagInput) error {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag.Tag == "" {
			return fmt.Errorf("tag name must not be empty")
		}
		if tag.Confidence < 0 || tag.Confidence > 1 {
			return fmt.Errorf("tag %q confidence %v out of range [0,1]", tag.Tag, tag.Confidence)
		}
		if _, dup := seen[tag.Tag]; dup {
			return fmt.Errorf("duplicate tag %q", tag.Tag)
		}
		seen[tag.Tag] = struct{}{}
	}
	return nil
}

// domainFromURL extracts the host from a source URL.
func domainFromURL(sourceURL string) (string, error) {
	if sourceURL == "" {
		return "", fmt.Errorf("source URL must not be empty")
	}
	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("invalid source URL %q", sourceURL)
	}
	return parsed.Hostname(), nil
}
