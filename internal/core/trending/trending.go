// Package trending scores posts by view-count growth rate over a
// two-point (or longer) time series, the alternate engine variant fed by
// aggregate view samples instead of per-viewer events.
package trending

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/agenthands/pulse/internal/core/derive"
	"github.com/agenthands/pulse/internal/core/model"
	"github.com/agenthands/pulse/internal/core/rank"
)

// Score is the view-count slope: (last count - first count) divided by
// the span in hours, after sorting samples by timestamp. Fewer than two
// samples, or a non-positive span, scores 0.
func Score(samples []model.ViewSample) float64 {
	if len(samples) < 2 {
		return 0
	}

	sorted := make([]model.ViewSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	hours := last.At.Sub(first.At).Hours()
	if hours <= 0 {
		return 0
	}
	return float64(last.Count-first.Count) / hours
}

// FilterPosts keeps posts whose content mentions at least one include
// keyword (when any are given) and none of the exclude keywords.
// Matching is case-insensitive substring search, order is preserved.
func FilterPosts(posts []*model.Post, include, exclude []string) []*model.Post {
	return lo.Filter(posts, func(p *model.Post, _ int) bool {
		text := strings.ToLower(p.Content)
		if len(include) > 0 {
			hit := false
			for _, kw := range include {
				if strings.Contains(text, strings.ToLower(kw)) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		}
		for _, kw := range exclude {
			if strings.Contains(text, strings.ToLower(kw)) {
				return false
			}
		}
		return true
	})
}

// TopK ranks posts by trending score with the usual descending-score,
// ascending-id order.
func TopK(posts []*model.Post, k int) []model.RankedResult {
	scores := make(map[string]float64, len(posts))
	candidates := make([]model.Candidate, 0, len(posts))
	for _, p := range posts {
		scores[p.ID] = Score(p.ViewSeries)
		candidates = append(candidates, model.Candidate{ID: p.ID, Attrs: derive.PostAttributes(p)})
	}
	return rank.SelectTopK(candidates, func(c model.Candidate) float64 {
		return scores[c.ID]
	}, k)
}
