package vectorstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"imagesearch/internal/contextutil"
)

// PgvectorStore implements VectorStore using PostgreSQL with the pgvector
// extension. Each collection maps to its own table with a fixed-dimension
// vector column, queried with cosine distance.
type PgvectorStore struct {
	pool *pgxpool.Pool
}

var collectionNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// NewPgvectorStore creates a new pgvector-backed store from a Postgres URL.
func NewPgvectorStore(ctx context.Context, url string) (*PgvectorStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Postgres URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Postgres pool: %w", err)
	}

	return &PgvectorStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PgvectorStore) Close() {
	s.pool.Close()
}

// tableName maps a collection to its backing table, rejecting names that
// cannot be used as identifiers.
func tableName(collection string) (string, error) {
	if !collectionNameRe.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return "vectors_" + collection, nil
}

// Upsert inserts or updates points in the collection.
func (s *PgvectorStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	table, err := tableName(collection)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	stmt := fmt.Sprintf(
		`INSERT INTO %s (id, embedding, meta) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET embedding = excluded.embedding, meta = excluded.meta`,
		table,
	)
	for _, point := range points {
		if _, err := tx.Exec(ctx, stmt, point.ID, pgvector.NewVector(point.Vec), point.Meta); err != nil {
			logger.ErrorContext(ctx, "failed to upsert point", "collection", collection, "id", point.ID, "error", err)
			return fmt.Errorf("failed to upsert point %s: %w", point.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// Search performs a cosine similarity search with optional filters.
// The <=> operator is cosine distance; the returned score is 1 - distance.
func (s *PgvectorStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}

	args := []any{pgvector.NewVector(query)}
	where := ""
	if domain, ok := filters["source_domain"]; ok {
		domainStr := fmt.Sprintf("%v", domain)
		if domainStr != "" {
			args = append(args, domainStr)
			where = "WHERE meta->>'source_domain' = $2"
		}
	}

	stmt := fmt.Sprintf(
		`SELECT id, meta, 1 - (embedding <=> $1) AS score FROM %s %s ORDER BY embedding <=> $1 LIMIT %d`,
		table, where, k,
	)

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", collection, "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}
	defer rows.Close()

	results := make([]SearchResult, 0, k)
	for rows.Next() {
		var (
			id    string
			meta  map[string]any
			score float64
		)
		if err := rows.Scan(&id, &meta, &score); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		if meta == nil {
			meta = make(map[string]any)
		}
		results = append(results, SearchResult{
			PointID: id,
			Score:   float32(score),
			Meta:    meta,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	logger.InfoContext(ctx, "search completed", "collection", collection, "k", k, "results", len(results))
	return results, nil
}

// Delete removes points by their IDs.
func (s *PgvectorStore) Delete(ctx context.Context, collection string, ids []string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	table, err := tableName(collection)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", table)
	if _, err := s.pool.Exec(ctx, stmt, ids); err != nil {
		logger.ErrorContext(ctx, "failed to delete points", "collection", collection, "count", len(ids), "error", err)
		return fmt.Errorf("failed to delete points: %w", err)
	}

	logger.InfoContext(ctx, "deleted points", "collection", collection, "count", len(ids))
	return nil
}

// Exists reports whether a point with the given ID is present.
func (s *PgvectorStore) Exists(ctx context.Context, collection string, id string) (bool, error) {
	table, err := tableName(collection)
	if err != nil {
		return false, err
	}

	var exists bool
	stmt := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := s.pool.QueryRow(ctx, stmt, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check point existence: %w", err)
	}
	return exists, nil
}

// CollectionExists checks if the collection's backing table exists.
func (s *PgvectorStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	table, err := tableName(collection)
	if err != nil {
		return false, err
	}

	var regclass *string
	if err := s.pool.QueryRow(ctx, "SELECT to_regclass($1)::text", table).Scan(&regclass); err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return regclass != nil, nil
}

// EnsureCollection creates the collection's table (and the vector extension)
// if needed, and validates the vector dimension if it already exists.
func (s *PgvectorStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	table, err := tableName(collection)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", collection, "vector_size", vectorSize)
		stmt := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
				id uuid PRIMARY KEY,
				embedding vector(%d) NOT NULL,
				meta jsonb
			)`, table, vectorSize)
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create collection table: %w", err)
		}
		logger.InfoContext(ctx, "collection created", "collection", collection, "vector_size", vectorSize)
		return nil
	}

	// Table exists, validate dimension. For vector columns atttypmod holds
	// the declared dimension.
	var actualSize int
	err = s.pool.QueryRow(ctx,
		"SELECT atttypmod FROM pg_attribute WHERE attrelid = $1::regclass AND attname = 'embedding'",
		table,
	).Scan(&actualSize)
	if err != nil {
		return fmt.Errorf("failed to get collection vector size: %w", err)
	}

	if actualSize != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actualSize)
	}

	logger.InfoContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
	return nil
}
