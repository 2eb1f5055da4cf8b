package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"imagesearch/internal/indexer"
	"imagesearch/internal/indexer/mocks"
)

// batchBody builds a multipart form with n copies of file under the "files"
// field plus a metadata field.
func batchBody(t *testing.T, files [][]byte, metadata string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, data := range files {
		part, err := w.CreateFormFile("files", fmt.Sprintf("upload%d.png", i))
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if metadata != "" {
		if err := w.WriteField("metadata", metadata); err != nil {
			t.Fatalf("failed to write metadata field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestBatchHandler_ServeHTTP(t *testing.T) {
	uploadImage := testPNG(t)

	t.Run("successful batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockIndexer := mocks.NewMockIndexer(ctrl)
		mockIndexer.EXPECT().
			IndexBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, jobs []indexer.Job) (indexer.BatchStats, error) {
				if len(jobs) != 2 {
					return indexer.BatchStats{}, fmt.Errorf("got %d jobs, want 2", len(jobs))
				}
				if jobs[0].SourceURL != "https://photos.example.com/a.png" {
					return indexer.BatchStats{}, fmt.Errorf("metadata not aligned: %q", jobs[0].SourceURL)
				}
				if jobs[1].Filename != "upload1.png" {
					return indexer.BatchStats{}, fmt.Errorf("unexpected filename %q", jobs[1].Filename)
				}
				if len(jobs[0].Tags) != 1 || jobs[0].Tags[0].Tag != "sunset" {
					return indexer.BatchStats{}, fmt.Errorf("tags not forwarded: %v", jobs[0].Tags)
				}
				return indexer.BatchStats{Total: 2, Indexed: 2}, nil
			})
		handler := NewBatchHandler(mockIndexer, testMaxUpload)

		metadata := `[{"source_url":"https://photos.example.com/a.png","tags":[{"tag":"sunset","confidence":0.9}]},` +
			`{"source_url":"https://photos.example.com/b.png"}]`
		body, contentType := batchBody(t, [][]byte{uploadImage, uploadImage}, metadata)
		req := httptest.NewRequest(http.MethodPost, "/api/index/batch", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var resp BatchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Total != 2 || resp.Indexed != 2 || resp.Failed != 0 {
			t.Errorf("response = %+v, want total 2 indexed 2 failed 0", resp)
		}
	})

	t.Run("partial failures reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockIndexer := mocks.NewMockIndexer(ctrl)
		mockIndexer.EXPECT().
			IndexBatch(gomock.Any(), gomock.Any()).
			Return(indexer.BatchStats{Total: 2, Indexed: 1, Failed: 1}, nil)
		handler := NewBatchHandler(mockIndexer, testMaxUpload)

		metadata := `[{"source_url":"https://photos.example.com/a.png"},{"source_url":"https://photos.example.com/b.png"}]`
		body, contentType := batchBody(t, [][]byte{uploadImage, []byte("garbage")}, metadata)
		req := httptest.NewRequest(http.MethodPost, "/api/index/batch", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var resp BatchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Failed != 1 {
			t.Errorf("failed = %d, want 1", resp.Failed)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewBatchHandler(mocks.NewMockIndexer(ctrl), testMaxUpload)

		req := httptest.NewRequest(http.MethodGet, "/api/index/batch", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
		}
	})

	t.Run("no files", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewBatchHandler(mocks.NewMockIndexer(ctrl), testMaxUpload)

		body, contentType := batchBody(t, nil, `[]`)
		req := httptest.NewRequest(http.MethodPost, "/api/index/batch", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("metadata count mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewBatchHandler(mocks.NewMockIndexer(ctrl), testMaxUpload)

		metadata := `[{"source_url":"https://photos.example.com/a.png"}]`
		body, contentType := batchBody(t, [][]byte{uploadImage, uploadImage}, metadata)
		req := httptest.NewRequest(http.MethodPost, "/api/index/batch", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewBatchHandler(mocks.NewMockIndexer(ctrl), testMaxUpload)

		body, contentType := batchBody(t, [][]byte{uploadImage}, `not json`)
		req := httptest.NewRequest(http.MethodPost, "/api/index/batch", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
