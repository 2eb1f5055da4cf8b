package search

import "sort"

// maxKeywords bounds the aggregated keyword list per response.
const maxKeywords = 10

// aggregateKeywords sums tag confidences across the result images and returns
// the heaviest keywords first. Ties sort alphabetically so equal-weight
// keywords come back in a stable order.
func aggregateKeywords(images []SimilarImage) []Keyword {
	weights := make(map[string]float64)
	for _, img := range images {
		for _, tag := range img.Tags {
			weights[tag.Tag] += tag.Confidence
		}
	}
	if len(weights) == 0 {
		return nil
	}

	keywords := make([]Keyword, 0, len(weights))
	for keyword, weight := range weights {
		keywords = append(keywords, Keyword{Keyword: keyword, Weight: weight})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Weight != keywords[j].Weight {
			return keywords[i].Weight > keywords[j].Weight
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
