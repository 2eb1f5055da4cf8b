package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tag_store.go -package=mocks imagesearch/internal/storage TagStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// TagStore defines the interface for tag association operations.
type TagStore interface {
	// ReplaceTags atomically replaces all tags for an image.
	// Passing an empty slice clears the image's tags.
	ReplaceTags(ctx context.Context, imageUUID string, tags []TagRecord) error
	// ListByImage returns all tags for an image, highest confidence first.
	ListByImage(ctx context.Context, imageUUID string) ([]TagRecord, error)
	// ListByImages returns tags for the given images, keyed by image uuid.
	ListByImages(ctx context.Context, imageUUIDs []string) (map[string][]TagRecord, error)
}

// TagRepo provides methods for tag operations.
// It implements the TagStore interface.
type TagRepo struct {
	db *sql.DB
}

// NewTagRepo creates a new TagRepo.
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// ReplaceTags atomically replaces all tags for an image in a transaction.
// The UNIQUE(image_uuid, tag) constraint means re-indexing can never leave
// duplicate tags behind.
func (r *TagRepo) ReplaceTags(ctx context.Context, imageUUID string, tags []TagRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM image_tags WHERE image_uuid = ?", imageUUID); err != nil {
		return fmt.Errorf("failed to delete old tags: %w", err)
	}

	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO image_tags (image_uuid, tag, confidence) VALUES (?, ?, ?)",
			imageUUID, tag.Tag, tag.Confidence,
		); err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", tag.Tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tag replacement: %w", err)
	}

	return nil
}

// ListByImage returns all tags for an image, highest confidence first,
// ties broken by tag name.
func (r *TagRepo) ListByImage(ctx context.Context, imageUUID string) ([]TagRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, image_uuid, tag, confidence FROM image_tags WHERE image_uuid = ? ORDER BY confidence DESC, tag",
		imageUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanTags(rows)
}

// ListByImages returns tags for the given images, keyed by image uuid.
// Images with no tags are simply absent from the result.
func (r *TagRepo) ListByImages(ctx context.Context, imageUUIDs []string) (map[string][]TagRecord, error) {
	result := make(map[string][]TagRecord, len(imageUUIDs))
	if len(imageUUIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(imageUUIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(imageUUIDs))
	for i, id := range imageUUIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, image_uuid, tag, confidence FROM image_tags WHERE image_uuid IN ("+placeholders+") ORDER BY confidence DESC, tag",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		result[tag.ImageUUID] = append(result[tag.ImageUUID], tag)
	}

	return result, nil
}

// scanTags scans all rows into TagRecords.
func scanTags(rows *sql.Rows) ([]TagRecord, error) {
	var tags []TagRecord
	for rows.Next() {
		var tag TagRecord
		if err := rows.Scan(&tag.ID, &tag.ImageUUID, &tag.Tag, &tag.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tags, nil
}
