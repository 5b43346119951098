// Package scoring turns a node's attribute bag into a single
// non-negative interest score under caller-supplied criteria. The score
// is a deterministic weighted sum of explicit features; nothing here is
// learned or statistical.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/pulse/internal/core/model"
)

// ErrInvalidCriteria marks criteria carrying an unrecognized preference
// value. Scoring still runs (the bad value contributes 0); callers log
// the warning instead of failing the ranking pass.
var ErrInvalidCriteria = errors.New("invalid criteria")

// Preference says whether a high or a low value of a feature is
// interesting. Empty means the feature is not scored.
type Preference string

const (
	PreferHigh Preference = "high"
	PreferLow  Preference = "low"
	PreferNone Preference = ""
)

// Criteria configures the weighted combination. Weights are pointers so
// an omitted weight can default to 1 when its preference is set; the
// view weight defaults to 0.1 and applies unconditionally.
type Criteria struct {
	PostCountPreference    Preference `json:"post_count_preference,omitempty"`
	PostWeight             *float64   `json:"post_weight,omitempty"`
	ReadingLevelPreference Preference `json:"reading_level_preference,omitempty"`
	ReadingWeight          *float64   `json:"reading_weight,omitempty"`
	CommentPreference      Preference `json:"comment_preference,omitempty"`
	CommentWeight          *float64   `json:"comment_weight,omitempty"`
	ViewWeight             *float64   `json:"view_weight,omitempty"`
}

// Validate reports unrecognized preference values. A non-nil error wraps
// ErrInvalidCriteria and lists the offending fields.
func (c Criteria) Validate() error {
	var bad []string
	check := func(field string, p Preference) {
		if p != PreferHigh && p != PreferLow && p != PreferNone {
			bad = append(bad, fmt.Sprintf("%s=%q", field, p))
		}
	}
	check("post_count_preference", c.PostCountPreference)
	check("reading_level_preference", c.ReadingLevelPreference)
	check("comment_preference", c.CommentPreference)

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCriteria, strings.Join(bad, ", "))
	}
	return nil
}

// Score computes the interest score of an attribute bag. Missing
// attributes read as their neutral defaults (0 counts, medium reading
// level). Negative totals are floored at 0.
func Score(attrs model.Attributes, c Criteria) float64 {
	score := 0.0

	postCount := attrs.Float("post_count", 0)
	switch c.PostCountPreference {
	case PreferHigh:
		score += postCount * weight(c.PostWeight, 1)
	case PreferLow:
		score += (20 - postCount) * weight(c.PostWeight, 1)
	}

	level := float64(model.ParseReadingLevel(attrs.Str("reading_level", "medium")))
	switch c.ReadingLevelPreference {
	case PreferHigh:
		score += level * weight(c.ReadingWeight, 1)
	case PreferLow:
		score += (4 - level) * weight(c.ReadingWeight, 1)
	}

	commentCount := attrs.Float("comment_count", 0)
	switch c.CommentPreference {
	case PreferHigh:
		score += commentCount * weight(c.CommentWeight, 1)
	case PreferLow:
		score += (100 - commentCount) * weight(c.CommentWeight, 1)
	}

	// View activity always counts, preference or not.
	score += attrs.Float("total_views", 0) * weight(c.ViewWeight, 0.1)

	if score < 0 {
		return 0
	}
	return score
}

func weight(w *float64, def float64) float64 {
	if w != nil {
		return *w
	}
	return def
}
