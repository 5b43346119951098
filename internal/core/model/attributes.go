package model

// Attributes is the flattened attribute bag a node exposes to filtering,
// scoring and visualization. Values are scalars: numbers or strings.
type Attributes map[string]any

// Float reads a numeric attribute, falling back to def when the key is
// missing or not numeric.
func (a Attributes) Float(key string, def float64) float64 {
	if v, ok := a[key]; ok {
		if f, ok := Numeric(v); ok {
			return f
		}
	}
	return def
}

// Str reads a string attribute with a fallback.
func (a Attributes) Str(key, def string) string {
	if v, ok := a[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Clone returns a shallow copy. Snapshots hand out copies so callers
// cannot mutate the graph through a returned bag.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Numeric coerces the scalar types an attribute value can arrive as
// (typed construction uses int, JSON decoding yields float64).
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Candidate is an (id, attributes) pair flowing from the graph store
// through filtering into top-K selection.
type Candidate struct {
	ID    string     `json:"id"`
	Attrs Attributes `json:"attributes"`
}

// RankedResult is one entry of a top-K answer.
type RankedResult struct {
	ID         string     `json:"id"`
	Score      float64    `json:"score"`
	Attributes Attributes `json:"attributes"`
}
