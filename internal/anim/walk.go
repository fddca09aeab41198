package anim

import (
	"math"

	"autorig/internal/mathutil"
	"autorig/internal/rig"
)

// WalkParams are the tunable amplitudes of the synthesized gait.
// Angles in degrees; BodyBob in world units.
type WalkParams struct {
	LegSwingDeg float64
	LegLiftDeg  float64
	ArmSwingDeg float64
	BodyBob     float64
	Frames      []int // keyframe schedule; phase = index mod 4
}

// DefaultWalkParams returns the stock 24-frame cycle: keys at 1/7/13/19/24,
// the last repeating the first phase so the loop closes.
func DefaultWalkParams() WalkParams {
	return WalkParams{
		LegSwingDeg: 30,
		LegLiftDeg:  15,
		ArmSwingDeg: 20,
		BodyBob:     0.02,
		Frames:      []int{1, 7, 13, 19, 24},
	}
}

// SynthesizeWalk generates a symmetric cyclic walk clip for the skeleton:
// mirrored thigh swings, contralateral shin lifts, counter-swinging upper
// arms and a double vertical bob on the root. Bones missing from the
// skeleton are skipped silently, so partial or non-humanoid rigs still get
// whatever subset applies. Pure in the skeleton's bone set and the params.
func SynthesizeWalk(skel *rig.Skeleton, p WalkParams) *Clip {
	frames := p.Frames
	if len(frames) == 0 {
		frames = DefaultWalkParams().Frames
	}

	legSwing := mathutil.Deg2Rad(p.LegSwingDeg)
	legLift := mathutil.Deg2Rad(p.LegLiftDeg)
	armSwing := mathutil.Deg2Rad(p.ArmSwingDeg)

	clip := NewClip("WalkCycle", frames[0], frames[len(frames)-1])

	keyRot := func(bone string, frame int, rx float64) {
		if skel.ByName(bone) == nil {
			return
		}
		clip.SetRotation(bone, frame, mathutil.Vec3{rx, 0, 0})
	}
	keyLoc := func(bone string, frame int, dz float64) {
		if skel.ByName(bone) == nil {
			return
		}
		clip.SetLocation(bone, frame, mathutil.Vec3{0, 0, dz})
	}

	thighL, thighR := rig.Left(rig.BoneThigh), rig.Right(rig.BoneThigh)
	shinL, shinR := rig.Left(rig.BoneShin), rig.Right(rig.BoneShin)
	armL, armR := rig.Left(rig.BoneUpperArm), rig.Right(rig.BoneUpperArm)

	for i, frame := range frames {
		phase := i % 4

		// Double bob per full cycle: down on contact phases, up on passing.
		if phase == 1 || phase == 3 {
			keyLoc(rig.BoneRoot, frame, p.BodyBob)
		} else {
			keyLoc(rig.BoneRoot, frame, -p.BodyBob)
		}

		switch phase {
		case 0: // left contact, right pushing off
			keyRot(thighL, frame, legSwing)
			keyRot(thighR, frame, -legSwing)
			keyRot(shinL, frame, 0)
			keyRot(shinR, frame, legLift)
		case 1: // passing, right shin trailing up
			keyRot(thighL, frame, 0)
			keyRot(thighR, frame, 0)
			keyRot(shinL, frame, legLift*2)
			keyRot(shinR, frame, 0)
		case 2: // mirrored contact
			keyRot(thighL, frame, -legSwing)
			keyRot(thighR, frame, legSwing)
			keyRot(shinL, frame, legLift)
			keyRot(shinR, frame, 0)
		case 3:
			keyRot(thighL, frame, 0)
			keyRot(thighR, frame, 0)
			keyRot(shinL, frame, 0)
			keyRot(shinR, frame, legLift*2)
		}

		// Arms counter-swing the legs on the contact phases only.
		switch phase {
		case 0:
			keyRot(armL, frame, armSwing)
			keyRot(armR, frame, -armSwing)
		case 2:
			keyRot(armL, frame, -armSwing)
			keyRot(armR, frame, armSwing)
		default:
			keyRot(armL, frame, 0)
			keyRot(armR, frame, 0)
		}
	}

	return clip
}

// MirrorError reports the largest deviation from perfect left/right thigh
// mirror symmetry across all keyed frames. Zero for a well-formed clip;
// exposed for validation and tests.
func MirrorError(c *Clip) float64 {
	l := c.Track(rig.Left(rig.BoneThigh))
	r := c.Track(rig.Right(rig.BoneThigh))
	if l == nil || r == nil || len(l.Rotations) != len(r.Rotations) {
		return 0
	}
	var worst float64
	for i := range l.Rotations {
		worst = math.Max(worst, math.Abs(l.Rotations[i].Euler[0]+r.Rotations[i].Euler[0]))
	}
	return worst
}
