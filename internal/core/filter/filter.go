// Package filter narrows candidate sets by attribute predicates before
// scoring. A spec is a flat map: plain keys are exact matches, keys
// suffixed _min/_max are numeric range bounds on the attribute named by
// stripping the suffix. All entries must hold for a candidate to pass.
package filter

import (
	"strings"

	"github.com/samber/lo"

	"github.com/agenthands/pulse/internal/core/model"
)

// Spec maps filter keys to scalar values or numeric bounds.
type Spec map[string]any

// Sentinels substituted when a range filter names an attribute the node
// does not carry. These are a convention tied to this dataset's assumed
// attribute ranges (ages, comment counts), not a general default.
const (
	missingMin = 0.0
	missingMax = 100.0
)

const (
	minSuffix = "_min"
	maxSuffix = "_max"
)

// Matches reports whether an attribute bag satisfies every entry of the
// spec. Missing attributes fail exact matches; under a range bound they
// evaluate as the sentinel instead of erroring.
func Matches(attrs model.Attributes, spec Spec) bool {
	for key, want := range spec {
		switch {
		case strings.HasSuffix(key, minSuffix):
			bound, ok := model.Numeric(want)
			if !ok {
				return false
			}
			if attrs.Float(strings.TrimSuffix(key, minSuffix), missingMin) < bound {
				return false
			}
		case strings.HasSuffix(key, maxSuffix):
			bound, ok := model.Numeric(want)
			if !ok {
				return false
			}
			if attrs.Float(strings.TrimSuffix(key, maxSuffix), missingMax) > bound {
				return false
			}
		default:
			have, ok := attrs[key]
			if !ok || !equal(have, want) {
				return false
			}
		}
	}
	return true
}

// Narrow returns the subsequence of candidates passing the spec,
// preserving relative order. An empty spec passes everything through.
func Narrow(candidates []model.Candidate, spec Spec) []model.Candidate {
	if len(spec) == 0 {
		return candidates
	}
	return lo.Filter(candidates, func(c model.Candidate, _ int) bool {
		return Matches(c.Attrs, spec)
	})
}

// equal compares scalars across the type boundary between typed
// construction (int) and JSON decoding (float64).
func equal(a, b any) bool {
	if fa, ok := model.Numeric(a); ok {
		fb, ok := model.Numeric(b)
		return ok && fa == fb
	}
	return a == b
}
