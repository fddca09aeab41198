package rig

import "autorig/internal/mathutil"

// Build derives a fixed-topology humanoid skeleton proportionally from the
// whole-mesh bounds. Deterministic and pure in the bounds values: the same
// box always yields the same rig. A zero-height or zero-width box collapses
// to coincident bones at a point — degenerate input, degenerate output, no
// error.
//
// Heights are fractions of total height measured from the bottom of the
// bounds; the spine chain sits on the X/Y center line.
func Build(bounds mathutil.Bounds) *Skeleton {
	centerX := bounds.Center()[0]
	centerY := bounds.Center()[1]

	height := bounds.Size()[2]
	width := bounds.Size()[0]

	bottom := bounds.Min[2]
	top := bounds.Max[2]

	hipHeight := bottom + height*0.45
	chestHeight := bottom + height*0.65
	shoulderHeight := bottom + height*0.75
	neckHeight := bottom + height*0.82
	headHeight := top

	kneeHeight := bottom + height*0.25
	footHeight := bottom

	hipWidth := width * 0.15
	shoulderWidth := width * 0.25

	s := NewSkeleton()

	at := func(x, z float64) mathutil.Vec3 {
		return mathutil.Vec3{x, centerY, z}
	}

	// Spine chain.
	s.Add(BoneRoot, at(centerX, hipHeight), at(centerX, hipHeight+height*0.05), "")
	s.Add(BoneSpine, at(centerX, hipHeight), at(centerX, chestHeight), BoneRoot)
	s.Add(BoneChest, at(centerX, chestHeight), at(centerX, shoulderHeight), BoneSpine)
	s.Add(BoneNeck, at(centerX, shoulderHeight), at(centerX, neckHeight), BoneChest)
	s.Add(BoneHead, at(centerX, neckHeight), at(centerX, headHeight), BoneNeck)

	// Arms, proximal to distal. Shoulder heads sit on the chest tail and the
	// rest of each arm chains from there, so the whole arm reads connected.
	for _, side := range []struct {
		suffix func(string) string
		sign   float64
	}{{Left, -1}, {Right, 1}} {
		shoulderX := centerX + side.sign*shoulderWidth*0.3
		elbowX := centerX + side.sign*shoulderWidth*0.9
		handX := centerX + side.sign*shoulderWidth*1.5

		s.Add(side.suffix(BoneShoulder),
			at(centerX, shoulderHeight),
			at(shoulderX, shoulderHeight),
			BoneChest)
		s.Add(side.suffix(BoneUpperArm),
			at(shoulderX, shoulderHeight),
			at(elbowX, shoulderHeight-height*0.05),
			side.suffix(BoneShoulder))
		s.Add(side.suffix(BoneForearm),
			at(elbowX, shoulderHeight-height*0.05),
			at(handX, shoulderHeight-height*0.1),
			side.suffix(BoneUpperArm))
		s.Add(side.suffix(BoneHand),
			at(handX, shoulderHeight-height*0.1),
			mathutil.Vec3{handX + side.sign*width*0.1, centerY, shoulderHeight - height*0.12},
			side.suffix(BoneForearm))
	}

	// Legs.
	for _, side := range []struct {
		suffix func(string) string
		sign   float64
	}{{Left, -1}, {Right, 1}} {
		hipX := centerX + side.sign*hipWidth

		s.Add(side.suffix(BoneThigh),
			at(hipX, hipHeight),
			at(hipX, kneeHeight),
			BoneRoot)
		s.Add(side.suffix(BoneShin),
			at(hipX, kneeHeight),
			at(hipX, footHeight+height*0.05),
			side.suffix(BoneThigh))
		s.Add(side.suffix(BoneFoot),
			at(hipX, footHeight+height*0.05),
			mathutil.Vec3{hipX, centerY - width*0.1, footHeight},
			side.suffix(BoneShin))
	}

	return s
}
