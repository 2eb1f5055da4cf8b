package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"imagesearch/internal/contextutil"
	"imagesearch/internal/embedding"
	"imagesearch/internal/imagefile"
	"imagesearch/internal/storage"
	"imagesearch/internal/vectorstore"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleDomainError maps errors from the indexing and search layers to HTTP
// status codes.
func handleDomainError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, imagefile.ErrInvalidImage):
		logger.WarnContext(ctx, "rejected invalid image", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid or unsupported image")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Image not found")
	case errors.Is(err, embedding.ErrUnavailable):
		logger.ErrorContext(ctx, "embedding service error", "error", err)
		writeError(w, http.StatusBadGateway, "Embedding service error")
	case errors.Is(err, vectorstore.ErrUnavailable):
		logger.ErrorContext(ctx, "vector store unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
	default:
		logger.ErrorContext(ctx, "request failed", "error", err)
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

// readUploadedImage reads the "file" part of a multipart upload, enforcing the
// size cap and an image/* content type when one is declared.
func readUploadedImage(r *http.Request, maxBytes int64) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, "", fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing file field: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if contentType := header.Header.Get("Content-Type"); contentType != "" &&
		!strings.HasPrefix(contentType, "image/") &&
		contentType != "application/octet-stream" {
		return nil, "", fmt.Errorf("%w: content type %s", imagefile.ErrInvalidImage, contentType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	return data, header.Filename, nil
}
