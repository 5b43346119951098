// Package viz shapes graph snapshots and ranking results into the
// payloads presentation collaborators consume. Rendering itself happens
// elsewhere; this is data only.
package viz

import (
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/agenthands/pulse/internal/core/graph"
	"github.com/agenthands/pulse/internal/core/model"
)

const (
	colorHighlight = "#FF6B6B"
	colorUser      = "#4ECDC4"
	colorPost      = "#45B7D1"
	colorEdgeDim   = "#DDD"
)

type Node struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Size        float64          `json:"size"`
	Color       string           `json:"color"`
	Highlighted bool             `json:"highlighted"`
	Attributes  model.Attributes `json:"attributes"`
}

type Edge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
	Color        string `json:"color"`
}

type Payload struct {
	Nodes            []Node               `json:"nodes"`
	Edges            []Edge               `json:"edges"`
	HighlightedUsers []model.RankedResult `json:"highlighted_users"`
}

// Build produces the display payload for a snapshot: every node sized and
// colored, ranked users highlighted and scaled by score relative to the
// best one.
func Build(g *graph.Graph, highlighted []model.RankedResult) Payload {
	byID := lo.KeyBy(highlighted, func(r model.RankedResult) string { return r.ID })

	maxScore := 1.0
	for _, r := range highlighted {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}

	var nodes []Node
	for _, id := range g.NodeIDs() {
		n, err := g.Node(id)
		if err != nil {
			continue
		}

		node := Node{ID: id, Type: string(n.Kind), Attributes: n.Attrs}
		if r, ok := byID[id]; ok {
			node.Highlighted = true
			node.Color = colorHighlight
			node.Size = 10 + (r.Score/maxScore)*20
		} else if n.Kind == graph.KindPost {
			node.Color = colorPost
			node.Size = 5
		} else {
			node.Color = colorUser
			node.Size = 8
		}
		nodes = append(nodes, node)
	}

	edges := lo.Map(g.Edges(), func(e graph.Edge, _ int) Edge {
		color := colorEdgeDim
		if e.Relation == graph.RelationCreated {
			color = colorHighlight
		}
		return Edge{Source: e.Source, Target: e.Target, Relationship: string(e.Relation), Color: color}
	})

	return Payload{Nodes: nodes, Edges: edges, HighlightedUsers: highlighted}
}

// WordFrequencies counts lower-cased terms across post content, for
// word-cloud style consumers. Punctuation is trimmed off word edges;
// words that are all punctuation vanish.
func WordFrequencies(posts []*model.Post) map[string]int {
	freq := make(map[string]int)
	for _, p := range posts {
		for _, w := range strings.Fields(strings.ToLower(p.Content)) {
			w = strings.TrimFunc(w, unicode.IsPunct)
			if w == "" {
				continue
			}
			freq[w]++
		}
	}
	return freq
}
