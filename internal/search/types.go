package search

import "time"

// Request is a similarity search query built from an uploaded image.
type Request struct {
	// Image is the raw uploaded image data to search with.
	Image []byte
	// Limit caps the number of results. Zero means DefaultLimit.
	Limit int
	// SourceDomain optionally restricts results to images from one domain.
	SourceDomain string
}

// Tag is a weighted label attached to an indexed image.
type Tag struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
}

// SimilarImage is one search result joined with its stored metadata.
type SimilarImage struct {
	UUID         string    `json:"uuid"`
	Score        float32   `json:"score"`
	Filename     string    `json:"filename"`
	SourceURL    string    `json:"source_url"`
	SourceDomain string    `json:"source_domain"`
	Dimensions   string    `json:"dimensions"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"created_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Tags         []Tag     `json:"tags"`
}

// Keyword is a tag aggregated across the result set, weighted by the sum of
// the per-image confidences it appeared with.
type Keyword struct {
	Keyword string  `json:"keyword"`
	Weight  float64 `json:"weight"`
}

// Response is the full answer to a similarity search.
type Response struct {
	Keywords      []Keyword      `json:"keywords"`
	SimilarImages []SimilarImage `json:"similar_images"`
	TotalFound    int            `json:"total_found"`
}
