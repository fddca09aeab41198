package skin

import (
	"math"

	"autorig/internal/mathutil"
	"autorig/internal/mesh"
	"autorig/internal/rig"
)

// Binder computes initial bind weights from vertex/bone proximity. The
// cleanup passes never depend on which binder produced their input, so a
// test can feed synthetic weights directly.
type Binder interface {
	Bind(m *mesh.Mesh, skel *rig.Skeleton) (VertexWeights, error)
}

// Smoother blends each vertex's weights toward its neighbors' average.
// The kernel is a host capability; cleanup only triggers it.
type Smoother interface {
	Smooth(vw VertexWeights, m *mesh.Mesh, iterations int) VertexWeights
}

// ProximityBinder weights each vertex by inverse squared distance to every
// bone segment. It stands in for a host 3D suite's automatic-weight parent
// operator when the pipeline runs self-contained.
type ProximityBinder struct {
	// MaxInfluences bounds the raw influence list per vertex before cleanup.
	MaxInfluences int
}

func (pb ProximityBinder) Bind(m *mesh.Mesh, skel *rig.Skeleton) (VertexWeights, error) {
	if len(skel.Bones) == 0 {
		return nil, rig.ErrNoBones
	}

	maxInf := pb.MaxInfluences
	if maxInf <= 0 {
		maxInf = 8
	}

	vw := NewVertexWeights(m.VertexCount())
	heats := make([]float64, len(skel.Bones))

	for v, p := range m.Positions {
		var total float64
		for bi := range skel.Bones {
			b := &skel.Bones[bi]
			d := distToSegment(p, b.Head, b.Tail)
			h := 1.0 / (d*d + 1e-6)
			heats[bi] = h
			total += h
		}

		// Keep the hottest bones, normalized. Selection by repeated max keeps
		// declaration order as the tie-break.
		picked := make([]BoneWeight, 0, maxInf)
		used := make(map[int]bool, maxInf)
		for len(picked) < maxInf && len(picked) < len(heats) {
			best, bestHeat := -1, 0.0
			for bi, h := range heats {
				if !used[bi] && h > bestHeat {
					best, bestHeat = bi, h
				}
			}
			if best < 0 {
				break
			}
			used[best] = true
			picked = append(picked, BoneWeight{Bone: skel.Bones[best].Name, Weight: bestHeat / total})
		}
		vw[v] = picked
	}

	return vw, nil
}

// distToSegment returns the distance from p to the segment a-b.
func distToSegment(p, a, b mathutil.Vec3) float64 {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return p.Sub(a).Len()
	}
	t := p.Sub(a).Dot(ab) / abLen2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Scale(t))).Len()
}
