package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"imagesearch/internal/imagefile"
	indexermocks "imagesearch/internal/indexer/mocks"
	searchmocks "imagesearch/internal/search/mocks"
	storagemocks "imagesearch/internal/storage/mocks"
	vectormocks "imagesearch/internal/vectorstore/mocks"
)

type fakePinger struct{}

func (p *fakePinger) PingContext(_ context.Context) error {
	return nil
}

func testDeps(t *testing.T, ctrl *gomock.Controller) *Deps {
	t.Helper()

	files, err := imagefile.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	return &Deps{
		SearchEngine:   searchmocks.NewMockEngine(ctrl),
		Indexer:        indexermocks.NewMockIndexer(ctrl),
		ImageRepo:      storagemocks.NewMockImageStore(ctrl),
		Files:          files,
		DB:             &fakePinger{},
		VectorStore:    vectormocks.NewMockVectorStore(ctrl),
		CollectionName: "images",
		MaxUploadBytes: 10 << 20,
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)

	router := NewRouter(testDeps(t, ctrl))

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)

	deps := testDeps(t, ctrl)
	deps.VectorStore.(*vectormocks.MockVectorStore).EXPECT().
		CollectionExists(gomock.Any(), "images").Return(true, nil).AnyTimes()
	deps.Indexer.(*indexermocks.MockIndexer).EXPECT().
		Delete(gomock.Any(), "11111111-2222-3333-4444-555555555555").Return(nil).AnyTimes()

	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "POST /api/search exists",
			method:     http.MethodPost,
			path:       "/api/search",
			wantStatus: http.StatusBadRequest, // No multipart body, but the route exists
		},
		{
			name:       "POST /api/index exists",
			method:     http.MethodPost,
			path:       "/api/index",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/index/batch exists",
			method:     http.MethodPost,
			path:       "/api/index/batch",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET /api/health exists",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/image rejects malformed id",
			method:     http.MethodGet,
			path:       "/api/image/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "DELETE /api/image exists",
			method:     http.MethodDelete,
			path:       "/api/image/11111111-2222-3333-4444-555555555555",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}
