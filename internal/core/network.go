package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/pulse/internal/core/derive"
	"github.com/agenthands/pulse/internal/core/graph"
	"github.com/agenthands/pulse/internal/core/model"
)

// Network is the mutable construction phase of a social network: users
// join, author posts, view and comment on each other's content. Once
// built, Snapshot freezes it into the read-only form the ranking engine
// works on. Construction and ranking never share mutable state.
type Network struct {
	users     map[string]*model.User
	userOrder []string
	posts     map[string]*model.Post
	postOrder []string
}

func NewNetwork() *Network {
	return &Network{
		users: make(map[string]*model.User),
		posts: make(map[string]*model.Post),
	}
}

// AddUser registers a user by username.
func (n *Network) AddUser(u model.User) (*model.User, error) {
	if u.Username == "" {
		return nil, fmt.Errorf("user has no username")
	}
	if _, ok := n.users[u.Username]; ok {
		return nil, fmt.Errorf("user %q already exists", u.Username)
	}
	added := u
	n.users[u.Username] = &added
	n.userOrder = append(n.userOrder, u.Username)
	return &added, nil
}

// Connect records a typed user-to-user relation, like following or
// friending. The target does not have to exist yet.
func (n *Network) Connect(username, target, relation string) error {
	u, ok := n.users[username]
	if !ok {
		return fmt.Errorf("connect: user %q: %w", username, graph.ErrNotFound)
	}
	u.Connections = append(u.Connections, model.Connection{Relation: relation, Username: target})
	return nil
}

// MakePost creates a post authored by the given user.
func (n *Network) MakePost(username, postID, content string, at time.Time) (*model.Post, error) {
	u, ok := n.users[username]
	if !ok {
		return nil, fmt.Errorf("make post: user %q: %w", username, graph.ErrNotFound)
	}
	if postID == "" {
		return nil, fmt.Errorf("make post: post has no id")
	}
	if _, ok := n.posts[postID]; ok {
		return nil, fmt.Errorf("make post: post %q already exists", postID)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p := &model.Post{ID: postID, AuthorID: username, Content: content, CreatedAt: at}
	n.posts[postID] = p
	n.postOrder = append(n.postOrder, postID)
	u.PostIDs = append(u.PostIDs, postID)
	return p, nil
}

// ViewPost records one view of a post. The post must exist; the viewer
// does not have to (the dataset is assembled incrementally, and views by
// unknown ids still count on the post). Repeat views all count.
func (n *Network) ViewPost(viewer, postID string, at time.Time) error {
	p, ok := n.posts[postID]
	if !ok {
		return fmt.Errorf("view post: post %q: %w", postID, graph.ErrNotFound)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	p.Views = append(p.Views, model.ViewEvent{ViewerID: viewer, At: at})
	if u, ok := n.users[viewer]; ok {
		u.ViewedPosts = append(u.ViewedPosts, postID)
	}
	return nil
}

// RecordViewSample appends an aggregate view-count sample to a post's
// time series, the trending-score input shape.
func (n *Network) RecordViewSample(postID string, at time.Time, count int) error {
	p, ok := n.posts[postID]
	if !ok {
		return fmt.Errorf("record view sample: post %q: %w", postID, graph.ErrNotFound)
	}
	p.ViewSeries = append(p.ViewSeries, model.ViewSample{At: at, Count: count})
	return nil
}

// CommentOn attaches a comment by the given author to a post. An empty
// commentID gets a generated one. The comment is owned by the post and
// mirrored on the author's authored list when the author is known.
func (n *Network) CommentOn(author, postID, commentID, content string, at time.Time) (*model.Comment, error) {
	p, ok := n.posts[postID]
	if !ok {
		return nil, fmt.Errorf("comment: post %q: %w", postID, graph.ErrNotFound)
	}
	if commentID == "" {
		commentID = uuid.New().String()
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	c := model.Comment{ID: commentID, AuthorID: author, Content: content, CreatedAt: at}
	p.Comments = append(p.Comments, c)
	if u, ok := n.users[author]; ok {
		u.Comments = append(u.Comments, c)
	}
	return &c, nil
}

// Users returns the users in join order.
func (n *Network) Users() []*model.User {
	out := make([]*model.User, 0, len(n.userOrder))
	for _, id := range n.userOrder {
		out = append(out, n.users[id])
	}
	return out
}

// Posts returns the posts in creation order.
func (n *Network) Posts() []*model.Post {
	out := make([]*model.Post, 0, len(n.postOrder))
	for _, id := range n.postOrder {
		out = append(out, n.posts[id])
	}
	return out
}

// Len is the number of nodes a snapshot of this network will hold.
func (n *Network) Len() int {
	return len(n.userOrder) + len(n.postOrder)
}

// Snapshot derives all metrics and freezes the network into an immutable
// view: user nodes first (join order), then post nodes (creation order),
// then created/viewed/connection edges. Metrics are recomputed from
// scratch here; there is no incremental update path.
func (n *Network) Snapshot() *Snapshot {
	g := graph.New()

	for _, id := range n.userOrder {
		u := n.users[id]
		posts := make([]*model.Post, 0, len(u.PostIDs))
		for _, pid := range u.PostIDs {
			posts = append(posts, n.posts[pid])
		}
		g.AddNode(id, graph.KindUser, derive.UserAttributes(u, posts))
	}

	for _, id := range n.postOrder {
		g.AddNode(id, graph.KindPost, derive.PostAttributes(n.posts[id]))
	}

	for _, id := range n.userOrder {
		u := n.users[id]
		for _, pid := range u.PostIDs {
			g.AddEdge(id, pid, graph.RelationCreated)
		}
		for _, c := range u.Connections {
			g.AddEdge(id, c.Username, graph.Relation(c.Relation))
		}
	}
	for _, id := range n.postOrder {
		for _, v := range n.posts[id].Views {
			g.AddEdge(v.ViewerID, id, graph.RelationViewed)
		}
	}

	return &Snapshot{graph: g, posts: n.Posts(), byAuthor: n.postsByAuthor()}
}

func (n *Network) postsByAuthor() map[string][]*model.Post {
	out := make(map[string][]*model.Post, len(n.userOrder))
	for _, id := range n.postOrder {
		p := n.posts[id]
		out[p.AuthorID] = append(out[p.AuthorID], p)
	}
	return out
}
