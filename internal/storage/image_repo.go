package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image_store.go -package=mocks imagesearch/internal/storage ImageStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ImageStore defines the interface for image metadata operations.
type ImageStore interface {
	// UpsertPending inserts a new image row in pending state (indexed_at NULL),
	// or resets an existing row back to pending with the new metadata.
	UpsertPending(ctx context.Context, img *ImageRecord) error
	// MarkIndexed sets indexed_at, making the record visible to queries.
	MarkIndexed(ctx context.Context, uuid string) error
	// Get gets an image row in any state. Returns ErrNotFound if not found.
	Get(ctx context.Context, uuid string) (*ImageRecord, error)
	// GetIndexed gets an image row only if it has been finalized.
	// Returns ErrNotFound for missing or still-pending rows.
	GetIndexed(ctx context.Context, uuid string) (*ImageRecord, error)
	// GetIndexedBatch returns the finalized rows for the given uuids, keyed by
	// uuid. Missing or pending ids are simply absent from the result.
	GetIndexedBatch(ctx context.Context, uuids []string) (map[string]*ImageRecord, error)
	// Delete removes an image row (tags cascade). Returns ErrNotFound if none.
	Delete(ctx context.Context, uuid string) error
	// ListPending returns pending rows created before the cutoff.
	ListPending(ctx context.Context, olderThan time.Time) ([]*ImageRecord, error)
}

// ImageRepo provides methods for image metadata operations.
// It implements the ImageStore interface.
type ImageRepo struct {
	db *sql.DB
}

// NewImageRepo creates a new ImageRepo.
func NewImageRepo(db *sql.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

// DB exposes the underlying database handle for stats queries.
func (r *ImageRepo) DB() *sql.DB {
	return r.db
}

const imageColumns = "uuid, filename, source_url, source_domain, file_size, dimensions, created_at, indexed_at"

// UpsertPending inserts a new image row in pending state, or resets an existing
// row back to pending with the new metadata. Re-indexing therefore hides the
// record from queries until the vector write is confirmed again.
func (r *ImageRepo) UpsertPending(ctx context.Context, img *ImageRecord) error {
	if img.UUID == "" {
		return fmt.Errorf("image uuid must be set")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO images (uuid, filename, source_url, source_domain, file_size, dimensions, created_at, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, NULL)
		 ON CONFLICT (uuid) DO UPDATE SET
		 filename = excluded.filename, source_url = excluded.source_url,
		 source_domain = excluded.source_domain, file_size = excluded.file_size,
		 dimensions = excluded.dimensions, indexed_at = NULL`,
		img.UUID, img.Filename, img.SourceURL, img.SourceDomain, img.FileSize, img.Dimensions,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert image: %w", err)
	}

	return nil
}

// MarkIndexed sets indexed_at on a pending row. This is the visibility boundary:
// queries only consider rows where indexed_at is non-NULL.
func (r *ImageRepo) MarkIndexed(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE images SET indexed_at = CURRENT_TIMESTAMP WHERE uuid = ?", uuid)
	if err != nil {
		return fmt.Errorf("failed to mark image indexed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get gets an image row in any state. Returns ErrNotFound if not found.
func (r *ImageRepo) Get(ctx context.Context, uuid string) (*ImageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+imageColumns+" FROM images WHERE uuid = ?", uuid)
	return scanImage(row)
}

// GetIndexed gets an image row only if it has been finalized.
func (r *ImageRepo) GetIndexed(ctx context.Context, uuid string) (*ImageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+imageColumns+" FROM images WHERE uuid = ? AND indexed_at IS NOT NULL", uuid)
	return scanImage(row)
}

// GetIndexedBatch returns the finalized rows for the given uuids, keyed by uuid.
// Ids with no finalized row are absent from the map; callers decide whether
// that is an inconsistency worth logging.
func (r *ImageRepo) GetIndexedBatch(ctx context.Context, uuids []string) (map[string]*ImageRecord, error) {
	result := make(map[string]*ImageRecord, len(uuids))
	if len(uuids) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(uuids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(uuids))
	for i, id := range uuids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+imageColumns+" FROM images WHERE uuid IN ("+placeholders+") AND indexed_at IS NOT NULL",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		img, err := scanImageRows(rows)
		if err != nil {
			return nil, err
		}
		result[img.UUID] = img
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

// Delete removes an image row. Tags cascade via the foreign key.
func (r *ImageRepo) Delete(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE uuid = ?", uuid)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPending returns pending rows created before the cutoff, oldest first.
// Used by the reconciliation pass.
func (r *ImageRepo) ListPending(ctx context.Context, olderThan time.Time) ([]*ImageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+imageColumns+" FROM images WHERE indexed_at IS NULL AND created_at < ? ORDER BY created_at",
		olderThan.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending images: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var pending []*ImageRecord
	for rows.Next() {
		img, err := scanImageRows(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return pending, nil
}

// scanImage scans a single-row query result into an ImageRecord.
func scanImage(row *sql.Row) (*ImageRecord, error) {
	var img ImageRecord
	var createdAtStr string
	var indexedAtStr sql.NullString

	err := row.Scan(&img.UUID, &img.Filename, &img.SourceURL, &img.SourceDomain,
		&img.FileSize, &img.Dimensions, &createdAtStr, &indexedAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query image: %w", err)
	}

	return finishImage(&img, createdAtStr, indexedAtStr)
}

// scanImageRows scans the current row of a multi-row result into an ImageRecord.
func scanImageRows(rows *sql.Rows) (*ImageRecord, error) {
	var img ImageRecord
	var createdAtStr string
	var indexedAtStr sql.NullString

	if err := rows.Scan(&img.UUID, &img.Filename, &img.SourceURL, &img.SourceDomain,
		&img.FileSize, &img.Dimensions, &createdAtStr, &indexedAtStr); err != nil {
		return nil, fmt.Errorf("failed to scan image: %w", err)
	}

	return finishImage(&img, createdAtStr, indexedAtStr)
}

func finishImage(img *ImageRecord, createdAtStr string, indexedAtStr sql.NullString) (*ImageRecord, error) {
	createdAt, err := parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	img.CreatedAt = createdAt

	if indexedAtStr.Valid {
		indexedAt, err := parseTimestamp(indexedAtStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse indexed_at timestamp: %w", err)
		}
		img.IndexedAt = &indexedAt
	}

	return img, nil
}

// parseTimestamp parses a SQLite DATETIME string.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite might use a different format depending on how the value was written
	return time.Parse(time.RFC3339, s)
}
