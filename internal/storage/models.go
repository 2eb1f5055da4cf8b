package storage

import "time"

// ImageRecord represents a row in the images table.
type ImageRecord struct {
	UUID         string // UUIDv4, same as the vector point ID
	Filename     string
	SourceURL    string
	SourceDomain string
	FileSize     int64
	Dimensions   string // Format: "1920x1080"
	CreatedAt    time.Time
	IndexedAt    *time.Time // nil while the record is pending
}

// Indexed reports whether the record has completed both writes.
func (r *ImageRecord) Indexed() bool {
	return r.IndexedAt != nil
}

// TagRecord represents a weighted tag associated with an image.
type TagRecord struct {
	ID         int64
	ImageUUID  string
	Tag        string
	Confidence float64 // in [0,1]
}
