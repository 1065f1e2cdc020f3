package content

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const SuggestThreshold = 0.7

// Suggest returns the post whose slug is closest to slug, if any is close
// enough to be worth offering on a not-found page.
func (s *Site) Suggest(slug string) (Post, bool) {
	metric := metrics.NewJaroWinkler()
	metric.CaseSensitive = false
	var best Post
	var bestScore float64
	for _, post := range s.Posts {
		score := strutil.Similarity(slug, post.Slug, metric)
		if score > bestScore {
			best, bestScore = post, score
		}
	}
	if bestScore < SuggestThreshold {
		return Post{}, false
	}
	return best, true
}
