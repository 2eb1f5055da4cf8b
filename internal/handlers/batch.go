package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/indexer"
)

// BatchHandler handles HTTP requests for indexing several images in one call.
type BatchHandler struct {
	indexer        indexer.Indexer
	maxUploadBytes int64
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(idx indexer.Indexer, maxUploadBytes int64) *BatchHandler {
	return &BatchHandler{
		indexer:        idx,
		maxUploadBytes: maxUploadBytes,
	}
}

// BatchItem carries the per-image fields of a batch request, aligned by
// position with the uploaded files.
type BatchItem struct {
	SourceURL string             `json:"source_url"`
	Tags      []indexer.TagInput `json:"tags,omitempty"`
}

// BatchResponse summarizes a batch indexing run.
type BatchResponse struct {
	Total   int `json:"total"`
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
}

// ServeHTTP handles POST /api/index/batch. The request is a multipart form
// with one or more "files" parts and a "metadata" field holding a JSON array
// of {source_url, tags} objects, one per file in upload order.
func (h *BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "At least one file is required")
		return
	}

	var items []BatchItem
	if err := json.Unmarshal([]byte(r.FormValue("metadata")), &items); err != nil {
		logger.WarnContext(ctx, "invalid metadata payload", "error", err)
		writeError(w, http.StatusBadRequest, "metadata must be a JSON array of {source_url, tags}")
		return
	}
	if len(items) != len(files) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("metadata has %d entries for %d files", len(items), len(files)))
		return
	}

	jobs := make([]indexer.Job, 0, len(files))
	for i, header := range files {
		if header.Size > h.maxUploadBytes {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("file %s exceeds the upload size limit", header.Filename))
			return
		}
		data, err := readFormFile(header)
		if err != nil {
			logger.WarnContext(ctx, "failed to read uploaded file", "filename", header.Filename, "error", err)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read file %s", header.Filename))
			return
		}
		jobs = append(jobs, indexer.Job{
			Filename:  header.Filename,
			SourceURL: items[i].SourceURL,
			Data:      data,
			Tags:      items[i].Tags,
		})
	}

	stats, err := h.indexer.IndexBatch(ctx, jobs)
	if err != nil {
		handleDomainError(w, ctx, err, "Failed to index batch")
		return
	}

	writeJSON(w, ctx, http.StatusOK, BatchResponse{
		Total:   stats.Total,
		Indexed: stats.Indexed,
		Failed:  stats.Failed,
	})
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return io.ReadAll(file)
}
