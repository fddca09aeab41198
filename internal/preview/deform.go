package preview

import (
	"autorig/internal/mathutil"
	"autorig/internal/mesh"
	"autorig/internal/rig"
	"autorig/internal/skin"
)

// DeformPositions applies linear blend skinning: each vertex moves by the
// weight-blended deformation matrices of its influencing bones. Vertices
// with no (or unknown) influences stay at their rest position.
func DeformPositions(m *mesh.Mesh, skel *rig.Skeleton, vw skin.VertexWeights, pose map[string]rig.BonePose) []mathutil.Vec3 {
	mats := skel.PoseMatrices(pose)

	out := make([]mathutil.Vec3, len(m.Positions))
	for v, p := range m.Positions {
		if v >= len(vw) || len(vw[v]) == 0 {
			out[v] = p
			continue
		}

		var blended mathutil.Vec3
		total := 0.0
		for _, bw := range vw[v] {
			bi := skel.IndexOf(bw.Bone)
			if bi < 0 {
				continue
			}
			blended = blended.Add(mats[bi].MulPoint(p).Scale(bw.Weight))
			total += bw.Weight
		}

		if total < 1e-9 {
			out[v] = p
			continue
		}
		out[v] = blended.Scale(1.0 / total)
	}
	return out
}
