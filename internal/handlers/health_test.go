package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"imagesearch/internal/vectorstore/mocks"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(_ context.Context) error {
	return p.err
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		mockSetup  func(*mocks.MockVectorStore)
		wantStatus int
		wantHealth string
		wantChecks map[string]string
	}{
		{
			name: "all stores healthy",
			mockSetup: func(m *mocks.MockVectorStore) {
				m.EXPECT().CollectionExists(gomock.Any(), "images").Return(true, nil)
			},
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
			wantChecks: map[string]string{"metadata_store": "ok", "vector_store": "ok"},
		},
		{
			name:    "metadata store down",
			pingErr: errors.New("database locked"),
			mockSetup: func(m *mocks.MockVectorStore) {
				m.EXPECT().CollectionExists(gomock.Any(), "images").Return(true, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantChecks: map[string]string{"metadata_store": "error", "vector_store": "ok"},
		},
		{
			name: "vector store unreachable",
			mockSetup: func(m *mocks.MockVectorStore) {
				m.EXPECT().CollectionExists(gomock.Any(), "images").Return(false, errors.New("connection refused"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantChecks: map[string]string{"metadata_store": "ok", "vector_store": "error"},
		},
		{
			name: "collection missing",
			mockSetup: func(m *mocks.MockVectorStore) {
				m.EXPECT().CollectionExists(gomock.Any(), "images").Return(false, nil)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantChecks: map[string]string{"metadata_store": "ok", "vector_store": "error"},
		},
		{
			name:    "both stores down still lists both checks",
			pingErr: errors.New("database locked"),
			mockSetup: func(m *mocks.MockVectorStore) {
				m.EXPECT().CollectionExists(gomock.Any(), "images").Return(false, errors.New("connection refused"))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantChecks: map[string]string{"metadata_store": "error", "vector_store": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockStore := mocks.NewMockVectorStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockStore)
			}
			handler := NewHealthHandler(&fakePinger{err: tt.pingErr}, mockStore, "images")

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("health status = %q, want %q", resp.Status, tt.wantHealth)
			}
			for check, want := range tt.wantChecks {
				if resp.Checks[check] != want {
					t.Errorf("check %s = %q, want %q", check, resp.Checks[check], want)
				}
			}
		})
	}
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockVectorStore(ctrl)
	handler := NewHealthHandler(&fakePinger{}, mockStore, "images")

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
