package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/imagefile"
	"imagesearch/internal/indexer"
	"imagesearch/internal/storage"
)

// ImageHandler serves thumbnails for indexed images and handles deletion.
type ImageHandler struct {
	imageRepo storage.ImageStore
	indexer   indexer.Indexer
	files     *imagefile.Store
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageRepo storage.ImageStore, idx indexer.Indexer, files *imagefile.Store) *ImageHandler {
	return &ImageHandler{
		imageRepo: imageRepo,
		indexer:   idx,
		files:     files,
	}
}

// ServeHTTP handles GET and DELETE on /api/image/{id}.
func (h *ImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	imageID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(imageID); err != nil {
		logger.WarnContext(ctx, "invalid image id", "id", imageID)
		writeError(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.serveThumbnail(w, r, imageID)
	case http.MethodDelete:
		h.deleteImage(w, r, imageID)
	default:
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// serveThumbnail sends the thumbnail of a finalized image. Records that are
// still pending are reported as not found.
func (h *ImageHandler) serveThumbnail(w http.ResponseWriter, r *http.Request, imageID string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := h.imageRepo.GetIndexed(ctx, imageID); err != nil {
		handleDomainError(w, ctx, err, "Failed to load image")
		return
	}

	path := h.files.ThumbnailPath(imageID)
	if _, err := os.Stat(path); err != nil {
		logger.ErrorContext(ctx, "thumbnail missing for indexed image", "uuid", imageID, "error", err)
		writeError(w, http.StatusNotFound, "Thumbnail not found")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, path)
}

func (h *ImageHandler) deleteImage(w http.ResponseWriter, r *http.Request, imageID string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := h.indexer.Delete(ctx, imageID); err != nil {
		handleDomainError(w, ctx, err, "Failed to delete image")
		return
	}

	logger.InfoContext(ctx, "image deleted", "uuid", imageID)
	w.WriteHeader(http.StatusNoContent)
}
