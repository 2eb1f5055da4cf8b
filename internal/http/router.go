package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"imagesearch/internal/handlers"
	"imagesearch/internal/imagefile"
	"imagesearch/internal/indexer"
	"imagesearch/internal/search"
	"imagesearch/internal/storage"
	"imagesearch/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SearchEngine   search.Engine
	Indexer        indexer.Indexer
	ImageRepo      storage.ImageStore
	Files          *imagefile.Store
	DB             handlers.Pinger
	VectorStore    vectorstore.VectorStore
	CollectionName string
	MaxUploadBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	searchHandler := handlers.NewSearchHandler(deps.SearchEngine, deps.MaxUploadBytes)
	indexHandler := handlers.NewIndexHandler(deps.Indexer, deps.MaxUploadBytes)
	batchHandler := handlers.NewBatchHandler(deps.Indexer, deps.MaxUploadBytes)
	imageHandler := handlers.NewImageHandler(deps.ImageRepo, deps.Indexer, deps.Files)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodPost, "/index", indexHandler)
		r.Method(http.MethodPost, "/index/batch", batchHandler)
		r.Method(http.MethodGet, "/image/{id}", imageHandler)
		r.Method(http.MethodDelete, "/image/{id}", imageHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
