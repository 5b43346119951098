// Package rank extracts the K highest-scoring candidates from a set. The
// scoring function is pluggable so the same selector serves interest
// ranking and trending ranking.
package rank

import (
	"container/heap"

	"github.com/agenthands/pulse/internal/core/model"
)

// ScoreFunc assigns a candidate its score. It must be pure over the
// candidate: selection is deterministic and idempotent.
type ScoreFunc func(model.Candidate) float64

// SelectTopK returns the min(k, len(candidates)) highest-scoring
// candidates, descending by score, ties broken by ascending id. k <= 0
// yields an empty result. Runs in O(n log k) with a bounded heap.
func SelectTopK(candidates []model.Candidate, score ScoreFunc, k int) []model.RankedResult {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	h := make(boundedHeap, 0, k)
	for _, c := range candidates {
		e := entry{id: c.ID, score: score(c), attrs: c.Attrs}
		if len(h) < k {
			heap.Push(&h, e)
			continue
		}
		// Heap root is the current worst keeper; replace it when the
		// new entry outranks it.
		if h.worse(h[0], e) {
			h[0] = e
			heap.Fix(&h, 0)
		}
	}

	// Popping drains worst-first; fill the result back to front.
	out := make([]model.RankedResult, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		e := heap.Pop(&h).(entry)
		out[i] = model.RankedResult{ID: e.id, Score: e.score, Attributes: e.attrs}
	}
	return out
}

type entry struct {
	id    string
	score float64
	attrs model.Attributes
}

// boundedHeap is a min-heap under the ranking order: the root is the
// entry that would be dropped first.
type boundedHeap []entry

func (h boundedHeap) Len() int { return len(h) }

func (h boundedHeap) Less(i, j int) bool { return h.worse(h[i], h[j]) }

// worse reports whether a ranks below b: lower score, or equal score and
// lexically greater id (ascending id wins ties).
func (boundedHeap) worse(a, b entry) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.id > b.id
}

func (h boundedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *boundedHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *boundedHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
