package anim

import (
	"math"
	"testing"

	"autorig/internal/mathutil"
	"autorig/internal/rig"
)

func walkSkeleton() *rig.Skeleton {
	return rig.Build(mathutil.Bounds{
		Min: mathutil.Vec3{-0.5, -0.25, 0},
		Max: mathutil.Vec3{0.5, 0.25, 2},
	})
}

func TestSynthesizeWalkMirrorSymmetry(t *testing.T) {
	clip := SynthesizeWalk(walkSkeleton(), DefaultWalkParams())

	if err := MirrorError(clip); err > 1e-12 {
		t.Fatalf("thigh mirror error = %v, want 0", err)
	}

	swing := mathutil.Deg2Rad(30)
	l := clip.Track(rig.Left(rig.BoneThigh))
	r := clip.Track(rig.Right(rig.BoneThigh))

	// Phase 0 (frame 1): left thigh forward, right thigh back by exactly
	// the same magnitude.
	if got := l.Rotations[0].Euler[0]; math.Abs(got-swing) > 1e-12 {
		t.Errorf("left thigh phase 0 = %v, want +%v", got, swing)
	}
	if got := r.Rotations[0].Euler[0]; math.Abs(got+swing) > 1e-12 {
		t.Errorf("right thigh phase 0 = %v, want -%v", got, swing)
	}
}

func TestSynthesizeWalkLoopCloses(t *testing.T) {
	clip := SynthesizeWalk(walkSkeleton(), DefaultWalkParams())

	if clip.Start != 1 || clip.End != 24 {
		t.Fatalf("clip range = [%d,%d], want [1,24]", clip.Start, clip.End)
	}

	first := clip.PoseAt(clip.Start)
	last := clip.PoseAt(clip.End)

	for bone, fp := range first {
		lp, ok := last[bone]
		if !ok {
			t.Errorf("bone %q missing at final frame", bone)
			continue
		}
		if fp.Rotation.Sub(lp.Rotation).Len() > 1e-12 {
			t.Errorf("%s: rotation %v at start, %v at end — loop not seamless", bone, fp.Rotation, lp.Rotation)
		}
		if fp.Location.Sub(lp.Location).Len() > 1e-12 {
			t.Errorf("%s: location %v at start, %v at end — loop not seamless", bone, fp.Location, lp.Location)
		}
	}
}

func TestSynthesizeWalkContralateralLift(t *testing.T) {
	clip := SynthesizeWalk(walkSkeleton(), DefaultWalkParams())
	lift := mathutil.Deg2Rad(15)

	shinR := clip.Track(rig.Right(rig.BoneShin))
	shinL := clip.Track(rig.Left(rig.BoneShin))

	// Phase 0: left leg plants, right shin lifts.
	if got := shinR.Rotations[0].Euler[0]; math.Abs(got-lift) > 1e-12 {
		t.Errorf("right shin phase 0 = %v, want %v", got, lift)
	}
	if got := shinL.Rotations[0].Euler[0]; got != 0 {
		t.Errorf("left shin phase 0 = %v, want 0", got)
	}
	// Phase 2 mirrors.
	if got := shinL.Rotations[2].Euler[0]; math.Abs(got-lift) > 1e-12 {
		t.Errorf("left shin phase 2 = %v, want %v", got, lift)
	}
}

func TestSynthesizeWalkRootBob(t *testing.T) {
	clip := SynthesizeWalk(walkSkeleton(), DefaultWalkParams())
	root := clip.Track(rig.BoneRoot)
	if root == nil {
		t.Fatal("no root track")
	}
	if len(root.Locations) != 5 {
		t.Fatalf("root location keys = %d, want 5", len(root.Locations))
	}

	want := []float64{-0.02, 0.02, -0.02, 0.02, -0.02}
	for i, k := range root.Locations {
		if math.Abs(k.Offset[2]-want[i]) > 1e-12 {
			t.Errorf("root bob key %d = %v, want %v", i, k.Offset[2], want[i])
		}
		if k.Offset[0] != 0 || k.Offset[1] != 0 {
			t.Errorf("root bob key %d has horizontal drift: %v", i, k.Offset)
		}
	}
}

func TestSynthesizeWalkSkipsMissingBones(t *testing.T) {
	s := rig.NewSkeleton()
	s.Add(rig.BoneRoot, mathutil.Vec3{}, mathutil.Vec3{0, 0, 0.1}, "")
	s.Add(rig.Left(rig.BoneThigh), mathutil.Vec3{}, mathutil.Vec3{0, 0, -0.5}, rig.BoneRoot)

	clip := SynthesizeWalk(s, DefaultWalkParams())

	if clip.Track(rig.Right(rig.BoneThigh)) != nil {
		t.Error("keyed a bone absent from the skeleton")
	}
	if clip.Track(rig.Left(rig.BoneThigh)) == nil {
		t.Error("present bone was not keyed")
	}
	if clip.Track(rig.BoneRoot) == nil {
		t.Error("root bob missing")
	}
}

func TestClipKeyOrdering(t *testing.T) {
	c := NewClip("t", 1, 10)
	c.SetRotation("b", 10, mathutil.Vec3{3, 0, 0})
	c.SetRotation("b", 1, mathutil.Vec3{1, 0, 0})
	c.SetRotation("b", 5, mathutil.Vec3{2, 0, 0})
	c.SetRotation("b", 5, mathutil.Vec3{4, 0, 0}) // overwrite

	tr := c.Track("b")
	if len(tr.Rotations) != 3 {
		t.Fatalf("keys = %d, want 3", len(tr.Rotations))
	}
	for i := 1; i < len(tr.Rotations); i++ {
		if tr.Rotations[i].Frame <= tr.Rotations[i-1].Frame {
			t.Fatal("keys not strictly increasing by frame")
		}
	}
	if tr.Rotations[1].Euler[0] != 4 {
		t.Errorf("overwrite failed: %v", tr.Rotations[1])
	}
}
