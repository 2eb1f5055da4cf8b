package handlers

import (
	"encoding/json"
	"net/http"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/indexer"
)

// IndexHandler handles HTTP requests for indexing new images.
type IndexHandler struct {
	indexer        indexer.Indexer
	maxUploadBytes int64
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(idx indexer.Indexer, maxUploadBytes int64) *IndexHandler {
	return &IndexHandler{
		indexer:        idx,
		maxUploadBytes: maxUploadBytes,
	}
}

// IndexResponse represents the response after indexing an image.
type IndexResponse struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

// ServeHTTP handles POST /api/index. The request is a multipart form with a
// "file" image part, a required "source_url" field and an optional "tags"
// field holding a JSON array of {tag, confidence} objects.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	image, filename, err := readUploadedImage(r, h.maxUploadBytes)
	if err != nil {
		logger.WarnContext(ctx, "invalid upload", "error", err)
		writeError(w, http.StatusBadRequest, "A valid image file is required")
		return
	}

	sourceURL := r.FormValue("source_url")
	if sourceURL == "" {
		writeError(w, http.StatusBadRequest, "source_url is required")
		return
	}

	var tags []indexer.TagInput
	if rawTags := r.FormValue("tags"); rawTags != "" {
		if err := json.Unmarshal([]byte(rawTags), &tags); err != nil {
			logger.WarnContext(ctx, "invalid tags payload", "error", err)
			writeError(w, http.StatusBadRequest, "tags must be a JSON array of {tag, confidence}")
			return
		}
	}

	job := indexer.Job{
		Filename:  filename,
		SourceURL: sourceURL,
		Data:      image,
		Tags:      tags,
	}
	imageID, err := h.indexer.IndexImage(ctx, job)
	if err != nil {
		handleDomainError(w, ctx, err, "Failed to index image")
		return
	}

	writeJSON(w, ctx, http.StatusCreated, IndexResponse{
		UUID:   imageID,
		Status: "indexed",
	})
}
