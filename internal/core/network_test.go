package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/pulse/internal/core/graph"
	"github.com/agenthands/pulse/internal/core/model"
	"github.com/agenthands/pulse/internal/core/scoring"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAddUser_Duplicate(t *testing.T) {
	n := NewNetwork()
	_, err := n.AddUser(model.User{Username: "emily"})
	assert.NoError(t, err)

	_, err = n.AddUser(model.User{Username: "emily"})
	assert.Error(t, err)

	_, err = n.AddUser(model.User{})
	assert.Error(t, err, "username is required")
}

func TestMakePost_Wiring(t *testing.T) {
	n := NewNetwork()
	_, err := n.AddUser(model.User{Username: "emily"})
	assert.NoError(t, err)

	p, err := n.MakePost("emily", "p1", "hello world", base)
	assert.NoError(t, err)
	assert.Equal(t, "emily", p.AuthorID)

	_, err = n.MakePost("ghost", "p2", "no author", base)
	assert.ErrorIs(t, err, graph.ErrNotFound)

	_, err = n.MakePost("emily", "p1", "dup id", base)
	assert.Error(t, err)

	users := n.Users()
	assert.Equal(t, []string{"p1"}, users[0].PostIDs)
}

func TestViewPost_UnknownViewerStillCounts(t *testing.T) {
	n := NewNetwork()
	_, err := n.AddUser(model.User{Username: "emily"})
	assert.NoError(t, err)
	_, err = n.MakePost("emily", "p1", "content", base)
	assert.NoError(t, err)

	assert.NoError(t, n.ViewPost("stranger", "p1", base))
	assert.NoError(t, n.ViewPost("stranger", "p1", base)) // repeat views count
	assert.ErrorIs(t, n.ViewPost("emily", "ghost", base), graph.ErrNotFound)

	assert.Equal(t, 2, n.Posts()[0].ViewCount())
}

func TestCommentOn_GeneratesIDAndMirrorsOnAuthor(t *testing.T) {
	n := NewNetwork()
	_, err := n.AddUser(model.User{Username: "emily"})
	assert.NoError(t, err)
	_, err = n.AddUser(model.User{Username: "jake"})
	assert.NoError(t, err)
	_, err = n.MakePost("emily", "p1", "content", base)
	assert.NoError(t, err)

	c, err := n.CommentOn("jake", "p1", "", "nice one", base)
	assert.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	assert.Len(t, n.Posts()[0].Comments, 1)
	assert.Len(t, n.Users()[1].Comments, 1, "authored comment mirrored on the user")
	assert.Empty(t, n.Users()[0].Comments)
}

func TestSnapshot_NodesAndEdges(t *testing.T) {
	n := NewNetwork()
	_, err := n.AddUser(model.User{Username: "emily", Region: "West"})
	assert.NoError(t, err)
	_, err = n.AddUser(model.User{Username: "jake", Region: "East"})
	assert.NoError(t, err)
	assert.NoError(t, n.Connect("emily", "jake", "friend"))

	_, err = n.MakePost("emily", "p1", "a post about networks", base)
	assert.NoError(t, err)
	assert.NoError(t, n.ViewPost("jake", "p1", base))

	g := n.Snapshot().Graph()

	// Users in join order, then posts in creation order.
	assert.Equal(t, []string{"emily", "jake", "p1"}, g.NodeIDs())

	attrs, err := g.AttributesOf("emily")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, attrs.Float("post_count", -1))
	assert.Equal(t, 1.0, attrs.Float("total_views", -1))

	edges := g.Edges()
	assert.Contains(t, edges, graph.Edge{Source: "emily", Target: "p1", Relation: graph.RelationCreated})
	assert.Contains(t, edges, graph.Edge{Source: "jake", Target: "p1", Relation: graph.RelationViewed})
	assert.Contains(t, edges, graph.Edge{Source: "emily", Target: "jake", Relation: "friend"})
}

// The end-to-end ranking scenario: three users with post counts 8/15/18
// and total views 350/800/950 under high-post-count criteria.
func TestExplorer_InterestingUsers_EndToEnd(t *testing.T) {
	n := NewNetwork()
	shape := []struct {
		name  string
		posts int
		views int
	}{
		{"soobin", 8, 350},
		{"beomgyu", 15, 800},
		{"yeonjun", 18, 950},
	}

	for _, s := range shape {
		_, err := n.AddUser(model.User{Username: s.name})
		assert.NoError(t, err)
		for i := 0; i < s.posts; i++ {
			id := fmt.Sprintf("%s-p%d", s.name, i)
			_, err := n.MakePost(s.name, id, "post content here", base)
			assert.NoError(t, err)
		}
		// Park all views on the first post as an aggregate series.
		first := fmt.Sprintf("%s-p0", s.name)
		assert.NoError(t, n.RecordViewSample(first, base, 0))
		assert.NoError(t, n.RecordViewSample(first, base.Add(time.Hour), s.views))
	}

	explorer := NewExplorer(n.Snapshot())
	two := 2.0
	tenth := 0.1
	results := explorer.InterestingUsers(scoringCriteria(two, tenth), nil, 1)

	assert.Len(t, results, 1)
	assert.Equal(t, "yeonjun", results[0].ID)
	assert.InDelta(t, 131.0, results[0].Score, 1e-9) // 18*2 + 950*0.1
}

func TestExplorer_InterestingUsers_Idempotent(t *testing.T) {
	n := sampleNetwork(t)
	explorer := NewExplorer(n.Snapshot())

	two := 2.0
	tenth := 0.1
	first := explorer.InterestingUsers(scoringCriteria(two, tenth), nil, 3)
	second := explorer.InterestingUsers(scoringCriteria(two, tenth), nil, 3)
	assert.Equal(t, first, second)
}

func TestExplorer_TrendingPosts(t *testing.T) {
	n := sampleNetwork(t)

	assert.NoError(t, n.RecordViewSample("p-emily", base, 0))
	assert.NoError(t, n.RecordViewSample("p-emily", base.Add(time.Hour), 120))
	assert.NoError(t, n.RecordViewSample("p-jake", base, 0))
	assert.NoError(t, n.RecordViewSample("p-jake", base.Add(time.Hour), 80))

	explorer := NewExplorer(n.Snapshot())

	results := explorer.TrendingPosts(nil, nil, nil, 2)
	assert.Len(t, results, 2)
	assert.Equal(t, "p-emily", results[0].ID)
	assert.InDelta(t, 120.0, results[0].Score, 1e-9)

	// Narrow to East-region authors only.
	results = explorer.TrendingPosts(map[string]any{"region": "East"}, nil, nil, 5)
	assert.Len(t, results, 1)
	assert.Equal(t, "p-jake", results[0].ID)

	// Keyword exclusion drops the hit entirely.
	results = explorer.TrendingPosts(nil, nil, []string{"social"}, 5)
	assert.Empty(t, results)
}

func sampleNetwork(t *testing.T) *Network {
	t.Helper()
	n := NewNetwork()
	_, err := n.AddUser(model.User{Username: "emily", Region: "West"})
	assert.NoError(t, err)
	_, err = n.AddUser(model.User{Username: "jake", Region: "East"})
	assert.NoError(t, err)
	_, err = n.MakePost("emily", "p-emily", "social media filters are fun", base)
	assert.NoError(t, err)
	_, err = n.MakePost("jake", "p-jake", "social networks spread information", base)
	assert.NoError(t, err)
	return n
}

func scoringCriteria(postWeight, viewWeight float64) scoring.Criteria {
	return scoring.Criteria{
		PostCountPreference: scoring.PreferHigh,
		PostWeight:          &postWeight,
		ViewWeight:          &viewWeight,
	}
}
