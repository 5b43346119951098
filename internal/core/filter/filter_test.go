package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/pulse/internal/core/model"
)

func TestMatches_ExactMatch(t *testing.T) {
	attrs := model.Attributes{"region": "Seoul", "age": 25}

	assert.True(t, Matches(attrs, Spec{"region": "Seoul"}))
	assert.False(t, Matches(attrs, Spec{"region": "Daegu"}))
	assert.False(t, Matches(attrs, Spec{"gender": "male"}), "missing attribute fails exact match")
}

func TestMatches_ExactMatchNumericCoercion(t *testing.T) {
	// Typed construction stores int, JSON filters arrive as float64.
	attrs := model.Attributes{"age": 25}
	assert.True(t, Matches(attrs, Spec{"age": 25.0}))
	assert.True(t, Matches(attrs, Spec{"age": 25}))
	assert.False(t, Matches(attrs, Spec{"age": 24.0}))
}

func TestMatches_RangeBounds(t *testing.T) {
	attrs := model.Attributes{"age": 25}

	assert.True(t, Matches(attrs, Spec{"age_min": 20}))
	assert.True(t, Matches(attrs, Spec{"age_min": 25}))
	assert.False(t, Matches(attrs, Spec{"age_min": 30}))

	assert.True(t, Matches(attrs, Spec{"age_max": 30}))
	assert.True(t, Matches(attrs, Spec{"age_max": 25}))
	assert.False(t, Matches(attrs, Spec{"age_max": 20}))
}

func TestMatches_MissingAttributeSentinels(t *testing.T) {
	// Missing attribute under a range bound evaluates as the sentinel:
	// 0 for _min comparisons, 100 for _max comparisons.
	assert.False(t, Matches(model.Attributes{}, Spec{"age_min": 30}))
	assert.True(t, Matches(model.Attributes{}, Spec{"age_min": 0}))
	assert.False(t, Matches(model.Attributes{}, Spec{"age_max": 30}))
	assert.True(t, Matches(model.Attributes{}, Spec{"age_max": 100}))
}

func TestMatches_AllEntriesMustHold(t *testing.T) {
	attrs := model.Attributes{"region": "Seoul", "age": 25, "comment_count": 45}

	assert.True(t, Matches(attrs, Spec{"region": "Seoul", "age_min": 20, "comment_count_max": 50}))
	assert.False(t, Matches(attrs, Spec{"region": "Seoul", "age_min": 30}))
}

func TestNarrow_PreservesOrder(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "yeonjun", Attrs: model.Attributes{"region": "Bundang"}},
		{ID: "soobin", Attrs: model.Attributes{"region": "Seoul"}},
		{ID: "taehyun", Attrs: model.Attributes{"region": "Seoul"}},
		{ID: "beomgyu", Attrs: model.Attributes{"region": "Daegu"}},
	}

	got := Narrow(candidates, Spec{"region": "Seoul"})
	assert.Len(t, got, 2)
	assert.Equal(t, "soobin", got[0].ID)
	assert.Equal(t, "taehyun", got[1].ID)
}

func TestNarrow_EmptySpecReturnsAll(t *testing.T) {
	candidates := []model.Candidate{
		{ID: "a", Attrs: model.Attributes{}},
		{ID: "b", Attrs: model.Attributes{}},
	}

	assert.Equal(t, candidates, Narrow(candidates, nil))
	assert.Equal(t, candidates, Narrow(candidates, Spec{}))
}
