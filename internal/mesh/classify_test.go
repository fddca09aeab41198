package mesh

import (
	"testing"

	"autorig/internal/mathutil"
)

// box builds bounds from min/max corners.
func box(minX, minY, minZ, maxX, maxY, maxZ float64) mathutil.Bounds {
	return mathutil.Bounds{
		Min: mathutil.Vec3{minX, minY, minZ},
		Max: mathutil.Vec3{maxX, maxY, maxZ},
	}
}

func TestClassifyCascade(t *testing.T) {
	// Unit humanoid envelope: X/Y/Z in [0,1].
	whole := box(0, 0, 0, 1, 1, 1)

	cases := []struct {
		name   string
		island mathutil.Bounds
		want   Class
	}{
		{"dominant volume wins", box(0.1, 0.1, 0.1, 0.9, 0.9, 0.9), ClassBody},
		{"high small island", box(0.45, 0.45, 0.85, 0.55, 0.55, 0.95), ClassHead},
		{"low left", box(0.1, 0.45, 0.0, 0.2, 0.55, 0.2), ClassLegL},
		{"low right", box(0.8, 0.45, 0.0, 0.9, 0.55, 0.2), ClassLegR},
		{"low center", box(0.45, 0.45, 0.0, 0.55, 0.55, 0.2), ClassLeg},
		{"mid left", box(0.0, 0.45, 0.45, 0.1, 0.55, 0.55), ClassArmL},
		{"mid right", box(0.9, 0.45, 0.45, 1.0, 0.55, 0.55), ClassArmR},
		{"mid center", box(0.45, 0.45, 0.45, 0.55, 0.55, 0.55), ClassAppendage},
	}

	for _, tc := range cases {
		if got := Classify(tc.island, whole); got != tc.want {
			t.Errorf("%s: Classify = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	whole := box(0, 0, 0, 1, 1, 1)

	// High AND far left: the head rule fires before the arm rule.
	high := box(0.0, 0.45, 0.85, 0.1, 0.55, 0.95)
	if got := Classify(high, whole); got != ClassHead {
		t.Errorf("high-left island = %q, want %q", got, ClassHead)
	}

	// Big AND low: volume beats position.
	bigLow := box(0.0, 0.0, 0.0, 1.0, 1.0, 0.4)
	if got := Classify(bigLow, whole); got != ClassBody {
		t.Errorf("big low island = %q, want %q", got, ClassBody)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	whole := box(0, 0, 0, 2, 1, 3)
	island := box(0.2, 0.2, 0.1, 0.4, 0.4, 0.5)

	first := Classify(island, whole)
	for i := 0; i < 10; i++ {
		if got := Classify(island, whole); got != first {
			t.Fatalf("classification not deterministic: %q then %q", first, got)
		}
	}
}

func TestClassifyDegenerateBounds(t *testing.T) {
	// Completely flat mesh: denominators floored, no panic, total function.
	whole := box(0, 0, 0, 0, 0, 0)
	island := box(0, 0, 0, 0, 0, 0)
	got := Classify(island, whole)
	if got == "" {
		t.Fatal("degenerate bounds produced empty classification")
	}
}
