package core

import (
	"log"

	"github.com/agenthands/pulse/internal/core/filter"
	"github.com/agenthands/pulse/internal/core/graph"
	"github.com/agenthands/pulse/internal/core/model"
	"github.com/agenthands/pulse/internal/core/rank"
	"github.com/agenthands/pulse/internal/core/scoring"
	"github.com/agenthands/pulse/internal/core/trending"
	"github.com/agenthands/pulse/internal/core/viz"
)

// Snapshot is the frozen view of a network: the derived graph plus the
// post entities trending and word-frequency analysis need. Ranking treats
// it as read-only, so any number of requests can share one snapshot.
type Snapshot struct {
	graph    *graph.Graph
	posts    []*model.Post
	byAuthor map[string][]*model.Post
}

// Graph exposes the underlying graph store.
func (s *Snapshot) Graph() *graph.Graph {
	return s.graph
}

// Posts returns all posts in creation order.
func (s *Snapshot) Posts() []*model.Post {
	return s.posts
}

// Explorer runs ranking queries over one snapshot.
type Explorer struct {
	snap *Snapshot
}

func NewExplorer(snap *Snapshot) *Explorer {
	return &Explorer{snap: snap}
}

// InterestingUsers filters the user nodes by spec, scores them under the
// criteria and returns the top k. Unrecognized criteria values are
// logged and contribute nothing; they never fail the pass.
func (e *Explorer) InterestingUsers(criteria scoring.Criteria, spec filter.Spec, k int) []model.RankedResult {
	if err := criteria.Validate(); err != nil {
		log.Printf("Warning: %v (unrecognized values are ignored)", err)
	}

	candidates := filter.Narrow(e.snap.graph.Candidates(graph.KindUser), spec)
	return rank.SelectTopK(candidates, func(c model.Candidate) float64 {
		return scoring.Score(c.Attrs, criteria)
	}, k)
}

// TrendingPosts narrows users by attribute spec, gathers their posts,
// applies keyword filters and ranks by trending score.
func (e *Explorer) TrendingPosts(userSpec filter.Spec, include, exclude []string, k int) []model.RankedResult {
	users := filter.Narrow(e.snap.graph.Candidates(graph.KindUser), userSpec)

	var posts []*model.Post
	for _, u := range users {
		posts = append(posts, e.snap.byAuthor[u.ID]...)
	}

	return trending.TopK(trending.FilterPosts(posts, include, exclude), k)
}

// VizData builds the display payload with the given ranked users
// highlighted.
func (e *Explorer) VizData(highlighted []model.RankedResult) viz.Payload {
	return viz.Build(e.snap.graph, highlighted)
}

// WordFrequencies counts terms across all post content in the snapshot.
func (e *Explorer) WordFrequencies() map[string]int {
	return viz.WordFrequencies(e.snap.posts)
}
