package model

import "time"

// User is a person in the network. Users own the posts and comments they
// author; everything else (viewed posts, connections) is held as id-based
// references resolved through the graph store.
type User struct {
	Username    string       `json:"username"`
	RealName    string       `json:"real_name,omitempty"`
	Age         int          `json:"age,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	Region      string       `json:"region,omitempty"`
	Connections []Connection `json:"connections,omitempty"`
	PostIDs     []string     `json:"post_ids,omitempty"`
	ViewedPosts []string     `json:"viewed_posts,omitempty"` // ids only, the post belongs to its author
	Comments    []Comment    `json:"comments,omitempty"`     // comments this user authored
}

// Connection is a typed user-to-user relation (friend, follower, ...).
type Connection struct {
	Relation string `json:"relation"`
	Username string `json:"username"`
}

// Post is a single piece of user-authored content. Comments and views are
// append-only; repeat views by the same viewer all count.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Comments []Comment   `json:"comments,omitempty"`
	Views    []ViewEvent `json:"views,omitempty"`

	// ViewSeries holds aggregate view-count samples over time, the
	// alternate input shape used for trending scores. A post carries
	// either per-viewer events or a series, not both.
	ViewSeries []ViewSample `json:"view_series,omitempty"`
}

// Comment is immutable once created.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewEvent records one viewer looking at a post once.
type ViewEvent struct {
	ViewerID string    `json:"viewer_id"`
	At       time.Time `json:"at"`
}

// ViewSample is a (timestamp, cumulative count) point in a post's
// view-count time series.
type ViewSample struct {
	At    time.Time `json:"at"`
	Count int       `json:"count"`
}

// ViewCount reports how many views a post has, whichever input shape it
// was built from: the number of recorded view events, or the latest
// sample of the aggregate series.
func (p *Post) ViewCount() int {
	if len(p.Views) > 0 {
		return len(p.Views)
	}
	if len(p.ViewSeries) > 0 {
		max := p.ViewSeries[0].Count
		for _, s := range p.ViewSeries[1:] {
			if s.Count > max {
				max = s.Count
			}
		}
		return max
	}
	return 0
}
