package skin

import (
	"sort"

	"autorig/internal/mesh"
)

// DefaultSmoothIterations matches the fixed iteration count the pipeline
// requests from the smoothing operator.
const DefaultSmoothIterations = 2

// NeighborSmoother blends each vertex's weights toward the average of its
// edge neighbors, factor per iteration. Stands in for a host suite's
// vertex-group smooth operator.
type NeighborSmoother struct {
	Factor float64 // blend toward neighbor average, default 0.5
}

func (ns NeighborSmoother) Smooth(vw VertexWeights, m *mesh.Mesh, iterations int) VertexWeights {
	factor := ns.Factor
	if factor <= 0 {
		factor = 0.5
	}
	adj := m.Neighbors()

	cur := vw
	for it := 0; it < iterations; it++ {
		next := NewVertexWeights(len(cur))

		for v := range cur {
			blended := make(map[string]float64, len(cur[v]))
			for _, bw := range cur[v] {
				blended[bw.Bone] += bw.Weight * (1 - factor)
			}

			if v < len(adj) && len(adj[v]) > 0 {
				inv := factor / float64(len(adj[v]))
				for _, nb := range adj[v] {
					for _, bw := range cur[nb] {
						blended[bw.Bone] += bw.Weight * inv
					}
				}
			} else {
				// Isolated vertex: nothing to average against.
				for _, bw := range cur[v] {
					blended[bw.Bone] += bw.Weight * factor
				}
			}

			next[v] = normalized(blended)
		}

		cur = next
	}

	return cur
}

// normalized converts a bone→weight map into a sorted, sum-1 influence list.
// Sorting is by descending weight, then name, so output is deterministic.
func normalized(weights map[string]float64) []BoneWeight {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil
	}

	out := make([]BoneWeight, 0, len(weights))
	for bone, w := range weights {
		out = append(out, BoneWeight{Bone: bone, Weight: w / total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Bone < out[j].Bone
	})
	return out
}
