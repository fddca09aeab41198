package skin

import (
	"sort"

	"autorig/internal/mesh"
	"autorig/internal/rig"
)

// Cleanup defaults. All of them are overridable through config; the values
// are carried over from the original batch tool rather than re-derived.
const (
	DefaultWeightThreshold     = 0.05
	DefaultMaxInfluences       = 4
	DefaultSmallIslandFraction = 0.02
	DefaultCoverageEpsilon     = 0.01
)

// ReassignIslands overwrites the weights of every island smaller than
// fraction×(total vertex count) with full weight on the bone nearest the
// island center. Automatic binders routinely misassign small disconnected
// accessories; nearest-bone wins there.
func ReassignIslands(vw VertexWeights, islands []mesh.Island, skel *rig.Skeleton, fraction float64) error {
	total := 0
	for _, is := range islands {
		total += is.VertexCount()
	}
	threshold := float64(total) * fraction

	for _, is := range islands {
		if float64(is.VertexCount()) > threshold {
			continue
		}

		bone, err := skel.Nearest(is.Bounds.Center())
		if err != nil {
			return err
		}

		for _, v := range is.Verts {
			vw.AssignFull(v, bone)
		}
	}
	return nil
}

// Clean applies the threshold/cap/normalize pass to every vertex:
// drop influences at or below threshold, sort by descending weight, keep at
// most maxInfluences, renormalize to 1.0. A vertex left with no influences
// stays empty here; EnsureCoverage handles it.
func Clean(vw VertexWeights, threshold float64, maxInfluences int) {
	for v := range vw {
		kept := vw[v][:0]
		for _, bw := range vw[v] {
			if bw.Weight > threshold {
				kept = append(kept, bw)
			}
		}

		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Weight > kept[j].Weight
		})
		if len(kept) > maxInfluences {
			kept = kept[:maxInfluences]
		}

		var total float64
		for _, bw := range kept {
			total += bw.Weight
		}
		if total > 0 {
			for i := range kept {
				kept[i].Weight /= total
			}
		}

		vw[v] = kept
	}
}

// EnsureCoverage assigns every vertex whose total weight is below epsilon
// full weight on its nearest bone, guaranteeing no vertex is left unskinned.
func EnsureCoverage(vw VertexWeights, m *mesh.Mesh, skel *rig.Skeleton, epsilon float64) error {
	for v := range vw {
		if vw.Total(v) >= epsilon {
			continue
		}

		bone, err := skel.Nearest(m.Positions[v])
		if err != nil {
			return err
		}
		vw.AssignFull(v, bone)
	}
	return nil
}
