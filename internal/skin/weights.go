// Package skin repairs and normalizes per-vertex bone weights produced by an
// automatic binder, and defines the capability interface that abstracts the
// binding and smoothing operators themselves.
package skin

// BoneWeight is one (bone, weight) influence on a vertex.
type BoneWeight struct {
	Bone   string
	Weight float64
}

// VertexWeights holds the influence list per vertex, indexed by vertex.
// After cleanup every non-empty list is sorted by descending weight, capped,
// and sums to 1.0.
type VertexWeights [][]BoneWeight

// NewVertexWeights allocates empty influence lists for n vertices.
func NewVertexWeights(n int) VertexWeights {
	return make(VertexWeights, n)
}

// Total sums the influences of one vertex.
func (vw VertexWeights) Total(v int) float64 {
	var t float64
	for _, bw := range vw[v] {
		t += bw.Weight
	}
	return t
}

// AssignFull replaces a vertex's influences with full weight on one bone.
func (vw VertexWeights) AssignFull(v int, bone string) {
	vw[v] = []BoneWeight{{Bone: bone, Weight: 1.0}}
}
