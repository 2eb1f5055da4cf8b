package handlers

import (
	"net/http"
	"strconv"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/search"
)

// SearchHandler handles HTTP requests for similarity search.
type SearchHandler struct {
	engine         search.Engine
	maxUploadBytes int64
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine search.Engine, maxUploadBytes int64) *SearchHandler {
	return &SearchHandler{
		engine:         engine,
		maxUploadBytes: maxUploadBytes,
	}
}

// ServeHTTP handles POST /api/search. The request is a multipart form with a
// "file" image part and optional "limit" and "source_domain" fields.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	req := search.Request{
		Image:        image,
		SourceDomain: r.FormValue("source_domain"),
	}
	if rawLimit := r.FormValue("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit <= 0 {
			logger.WarnContext(ctx, "invalid limit", "limit", rawLimit)
			writeError(w, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.engine.Search(ctx, req)
	if err != nil {
		handleDomainError(w, ctx, err, "Failed to search")
		return
	}

	logger.InfoContext(ctx, "search completed",
		"filename", filename, "results", resp.TotalFound)
	writeJSON(w, ctx, http.StatusOK, resp)
}
