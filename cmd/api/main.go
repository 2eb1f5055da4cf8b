package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"imagesearch/internal/config"
	"imagesearch/internal/embedding"
	"imagesearch/internal/http"
	"imagesearch/internal/imagefile"
	"imagesearch/internal/indexer"
	"imagesearch/internal/search"
	"imagesearch/internal/storage"
	"imagesearch/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize metadata database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	imageRepo := storage.NewImageRepo(db)
	tagRepo := storage.NewTagRepo(db)

	files, err := imagefile.NewStore(cfg.StorageDir)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	slog.Info("Image storage initialized", "dir", cfg.StorageDir)

	ctx := context.Background()

	// Select vector backend
	var vectorStore vectorstore.VectorStore
	switch cfg.VectorBackend {
	case "pgvector":
		vectorStore, err = vectorstore.NewPgvectorStore(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to create pgvector store: %v", err)
		}
	default:
		vectorStore, err = vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}
	slog.Info("Vector collection ready",
		"backend", cfg.VectorBackend, "collection", cfg.QdrantCollection, "vector_size", cfg.VectorSize)

	// Validate embedding service reachability and vector size (fail-fast)
	embedder := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)
	probe, err := embedder.EmbedImage(ctx, probeImage())
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(probe) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.VectorSize, len(probe))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.VectorSize)

	pipeline := indexer.NewPipeline(
		imageRepo,
		tagRepo,
		embedder,
		vectorStore,
		files,
		cfg.QdrantCollection,
		cfg.IndexWorkers,
	)

	engine := search.NewEngine(
		embedder,
		vectorStore,
		imageRepo,
		tagRepo,
		cfg.QdrantCollection,
	)
	slog.Info("Search engine initialized")

	// Background reconciliation of records stuck in pending state
	if cfg.ReconcileInterval > 0 {
		go pipeline.RunReconcileLoop(ctx,
			time.Duration(cfg.ReconcileInterval)*time.Second,
			time.Duration(cfg.PendingCutoff)*time.Second)
		slog.Info("Reconciliation loop started",
			"interval_seconds", cfg.ReconcileInterval, "cutoff_seconds", cfg.PendingCutoff)
	}

	deps := &http.Deps{
		SearchEngine:   engine,
		Indexer:        pipeline,
		ImageRepo:      imageRepo,
		Files:          files,
		DB:             db,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Embedding configuration", "base_url", cfg.EmbeddingBaseURL, "model", cfg.EmbeddingModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// probeImage returns a minimal PNG used to verify the embedding service at boot.
func probeImage() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
