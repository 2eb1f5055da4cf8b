package search

import (
	"fmt"
	"reflect"
	"testing"
)

func TestAggregateKeywords(t *testing.T) {
	tests := []struct {
		name   string
		images []SimilarImage
		want   []Keyword
	}{
		{
			name:   "no images",
			images: nil,
			want:   nil,
		},
		{
			name:   "images without tags",
			images: []SimilarImage{{UUID: "a"}, {UUID: "b"}},
			want:   nil,
		},
		{
			name: "confidences sum across images",
			images: []SimilarImage{
				{Tags: []Tag{{Tag: "sunset", Confidence: 0.9}, {Tag: "beach", Confidence: 0.4}}},
				{Tags: []Tag{{Tag: "sunset", Confidence: 0.8}}},
			},
			want: []Keyword{
				{Keyword: "sunset", Weight: 1.7},
				{Keyword: "beach", Weight: 0.4},
			},
		},
		{
			name: "equal weights sort alphabetically",
			images: []SimilarImage{
				{Tags: []Tag{{Tag: "zebra", Confidence: 0.5}, {Tag: "antelope", Confidence: 0.5}}},
			},
			want: []Keyword{
				{Keyword: "antelope", Weight: 0.5},
				{Keyword: "zebra", Weight: 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregateKeywords(tt.images)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("aggregateKeywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateKeywordsCapped(t *testing.T) {
	var images []SimilarImage
	for i := 0; i < 15; i++ {
		images = append(images, SimilarImage{
			Tags: []Tag{{Tag: fmt.Sprintf("tag%02d", i), Confidence: float64(i) / 20}},
		})
	}

	got := aggregateKeywords(images)
	if len(got) != maxKeywords {
		t.Fatalf("aggregateKeywords() returned %d keywords, want %d", len(got), maxKeywords)
	}
	// Heaviest keyword first
	if got[0].Keyword != "tag14" {
		t.Errorf("aggregateKeywords()[0] = %q, want %q", got[0].Keyword, "tag14")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Weight > got[i-1].Weight {
			t.Errorf("keywords out of order at %d: %v before %v", i, got[i-1], got[i])
		}
	}
}
