// Package derive computes the per-node metrics the ranking engine scores
// on: post/view/comment counts and reading-level estimates. Derivation is
// a pure batch computation over the entities; it runs once per snapshot,
// never incrementally.
package derive

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agenthands/pulse/internal/core/model"
)

// ReadingLevelOf estimates text complexity from mean word length:
// above 6 is high, above 4 is medium, anything else (including empty or
// whitespace-only content) is low.
func ReadingLevelOf(text string) model.ReadingLevel {
	words := strings.Fields(text)
	if len(words) == 0 {
		return model.ReadingLow
	}

	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(strings.TrimFunc(w, unicode.IsPunct))
	}
	mean := float64(total) / float64(len(words))

	switch {
	case mean > 6:
		return model.ReadingHigh
	case mean > 4:
		return model.ReadingMedium
	default:
		return model.ReadingLow
	}
}

// UserReadingLevel is the categorical average of the authored posts'
// levels: mean of the numeric mapping low=1 medium=2 high=3, rounded at
// 1.5 and 2.5. A user with no posts defaults to medium.
func UserReadingLevel(posts []*model.Post) model.ReadingLevel {
	if len(posts) == 0 {
		return model.ReadingMedium
	}

	sum := 0
	for _, p := range posts {
		sum += int(ReadingLevelOf(p.Content))
	}
	mean := float64(sum) / float64(len(posts))

	switch {
	case mean <= 1.5:
		return model.ReadingLow
	case mean <= 2.5:
		return model.ReadingMedium
	default:
		return model.ReadingHigh
	}
}

// UserAttributes builds the attribute bag for a user node from the user's
// profile and authored posts. Derived keys: post_count, total_views,
// comment_count (comments the user wrote), reading_level.
func UserAttributes(u *model.User, posts []*model.Post) model.Attributes {
	totalViews := 0
	for _, p := range posts {
		totalViews += p.ViewCount()
	}

	attrs := model.Attributes{
		"post_count":    len(posts),
		"total_views":   totalViews,
		"comment_count": len(u.Comments),
		"reading_level": UserReadingLevel(posts).String(),
	}
	if u.RealName != "" {
		attrs["name"] = u.RealName
	}
	if u.Age != 0 {
		attrs["age"] = u.Age
	}
	if u.Gender != "" {
		attrs["gender"] = u.Gender
	}
	if u.Region != "" {
		attrs["region"] = u.Region
	}
	return attrs
}

// PostAttributes builds the attribute bag for a post node.
func PostAttributes(p *model.Post) model.Attributes {
	return model.Attributes{
		"author":        p.AuthorID,
		"content":       p.Content,
		"view_count":    p.ViewCount(),
		"comment_count": len(p.Comments),
		"reading_level": ReadingLevelOf(p.Content).String(),
	}
}
