package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8081", "test-key", "test-model", 512)
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8081" {
		t.Errorf("NewClient() BaseURL = %v, want http://localhost:8081", client.BaseURL)
	}
	if client.ExpectedSize != 512 {
		t.Errorf("NewClient() ExpectedSize = %v, want 512", client.ExpectedSize)
	}
}

func TestClient_EmbedImage(t *testing.T) {
	tests := []struct {
		name         string
		image        []byte
		expectedSize int
		serverResp   func(w http.ResponseWriter, r *http.Request)
		wantErr      bool
	}{
		{
			name:         "successful embedding",
			image:        []byte("fake-image-bytes"),
			expectedSize: 512,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1/embeddings/image" {
					t.Errorf("expected /v1/embeddings/image, got %s", r.URL.Path)
				}
				var req embedRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				if req.Image == "" {
					t.Error("expected base64 image payload")
				}

				resp := embedResponse{
					Data: []embedData{
						{Embedding: make([]float64, 512)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: false,
		},
		{
			name:         "empty image",
			image:        nil,
			expectedSize: 512,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				// Should not be called
			},
			wantErr: true,
		},
		{
			name:         "wrong embedding count",
			image:        []byte("fake-image-bytes"),
			expectedSize: 512,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := embedResponse{
					Data: []embedData{
						{Embedding: make([]float64, 512)},
						{Embedding: make([]float64, 512)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "wrong vector size",
			image:        []byte("fake-image-bytes"),
			expectedSize: 512,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := embedResponse{
					Data: []embedData{
						{Embedding: make([]float64, 256)}, // Wrong size
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:         "server error",
			image:        []byte("fake-image-bytes"),
			expectedSize: 512,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "test-key", "test-model", tt.expectedSize)

			vec, err := client.EmbedImage(context.Background(), tt.image)

			if tt.wantErr {
				if err == nil {
					t.Errorf("EmbedImage() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("EmbedImage() unexpected error: %v", err)
			}
			if len(vec) != tt.expectedSize {
				t.Errorf("EmbedImage() vector size = %d, want %d", len(vec), tt.expectedSize)
			}
		})
	}
}
