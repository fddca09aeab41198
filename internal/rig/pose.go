package rig

import "autorig/internal/mathutil"

// BonePose is one bone's sampled animation state: a local Euler XYZ rotation
// (radians) applied about the bone head, plus a translation offset.
type BonePose struct {
	Rotation mathutil.Vec3
	Location mathutil.Vec3
}

// PoseMatrices computes the world deformation matrix for each bone, indexed
// by declaration order. Bones absent from the pose map keep their parent's
// deformation; an empty pose yields all-identity matrices.
//
// Each local delta rotates about the bone's head and chains with the
// parent's delta, so rest pose deforms to identity.
func (s *Skeleton) PoseMatrices(pose map[string]BonePose) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(s.Bones))
	for i := range worlds {
		worlds[i] = mathutil.Mat4Identity()
	}

	for i, bone := range s.Bones {
		local := mathutil.Mat4Identity()

		if bp, ok := pose[bone.Name]; ok {
			q := mathutil.EulerToQuat(bp.Rotation[0], bp.Rotation[1], bp.Rotation[2])
			rot := mathutil.QuatToMat3(q)

			// T(head + offset) · R · T(-head)
			pivot := mathutil.FromMat3Translation(rot, bone.Head.Add(bp.Location))
			back := mathutil.FromMat3Translation(mathutil.Mat3Identity(), bone.Head.Scale(-1))
			local = mathutil.Mat4Mul(pivot, back)
		}

		if pi := s.ParentIndex(i); pi >= 0 && pi < i {
			worlds[i] = mathutil.Mat4Mul(worlds[pi], local)
		} else {
			worlds[i] = local
		}
	}

	return worlds
}
