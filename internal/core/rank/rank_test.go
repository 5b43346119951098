package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/pulse/internal/core/model"
)

func byAttr(key string) ScoreFunc {
	return func(c model.Candidate) float64 {
		return c.Attrs.Float(key, 0)
	}
}

func ids(results []model.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestSelectTopK_OrdersByScoreDescending(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "soobin", Attrs: model.Attributes{"score": 51.0}},
		{ID: "beomgyu", Attrs: model.Attributes{"score": 115.0}},
		{ID: "yeonjun", Attrs: model.Attributes{"score": 131.0}},
	}

	got := SelectTopK(candidates, byAttr("score"), 2)
	assert.Equal(t, []string{"yeonjun", "beomgyu"}, ids(got))
	assert.Equal(t, 131.0, got[0].Score)
}

func TestSelectTopK_KLargerThanInput(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "b", Attrs: model.Attributes{"score": 1.0}},
		{ID: "a", Attrs: model.Attributes{"score": 3.0}},
		{ID: "c", Attrs: model.Attributes{"score": 2.0}},
	}

	got := SelectTopK(candidates, byAttr("score"), 10)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))
}

func TestSelectTopK_TieBreakAscendingID(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "zara", Attrs: model.Attributes{"score": 5.0}},
		{ID: "anna", Attrs: model.Attributes{"score": 5.0}},
		{ID: "mike", Attrs: model.Attributes{"score": 5.0}},
		{ID: "liam", Attrs: model.Attributes{"score": 9.0}},
	}

	got := SelectTopK(candidates, byAttr("score"), 4)
	assert.Equal(t, []string{"liam", "anna", "mike", "zara"}, ids(got))

	// Tie-break holds under truncation too: the kept ties are the
	// lexically smallest ids.
	got = SelectTopK(candidates, byAttr("score"), 2)
	assert.Equal(t, []string{"liam", "anna"}, ids(got))
}

func TestSelectTopK_NonPositiveK(t *testing.T) {
	candidates := []model.Candidate{{ID: "a", Attrs: model.Attributes{}}}

	assert.Empty(t, SelectTopK(candidates, byAttr("score"), 0))
	assert.Empty(t, SelectTopK(candidates, byAttr("score"), -3))
}

func TestSelectTopK_EmptyCandidates(t *testing.T) {
	assert.Empty(t, SelectTopK(nil, byAttr("score"), 5))
}

func TestSelectTopK_Deterministic(t *testing.T) {
	var candidates []model.Candidate
	for i := 0; i < 100; i++ {
		candidates = append(candidates, model.Candidate{
			ID:    fmt.Sprintf("user-%03d", i),
			Attrs: model.Attributes{"score": float64(i % 7)},
		})
	}

	first := SelectTopK(candidates, byAttr("score"), 10)
	second := SelectTopK(candidates, byAttr("score"), 10)
	assert.Equal(t, first, second)
}

func TestSelectTopK_BoundedHeapMatchesFullSort(t *testing.T) {
	var candidates []model.Candidate
	for i := 0; i < 200; i++ {
		candidates = append(candidates, model.Candidate{
			ID:    fmt.Sprintf("n%03d", (i*37)%200),
			Attrs: model.Attributes{"score": float64((i * 13) % 29)},
		})
	}

	full := SelectTopK(candidates, byAttr("score"), len(candidates))
	topTen := SelectTopK(candidates, byAttr("score"), 10)
	assert.Equal(t, full[:10], topTen)
}
