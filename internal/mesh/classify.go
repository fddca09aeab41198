package mesh

import "autorig/internal/mathutil"

// Class is the semantic role assigned to an island by position and size.
type Class string

const (
	ClassBody      Class = "body"
	ClassHead      Class = "head"
	ClassLegL      Class = "leg_l"
	ClassLegR      Class = "leg_r"
	ClassLeg       Class = "leg"
	ClassArmL      Class = "arm_l"
	ClassArmR      Class = "arm_r"
	ClassAppendage Class = "appendage"
)

// ExtentFloor guards ratio denominators against flat or degenerate meshes.
const ExtentFloor = 0.001

// Classify assigns a semantic role to an island from its bounds relative to
// the whole-mesh bounds. Pure and total: no inputs are rejected, degenerate
// extents are floored instead of dividing by zero.
//
// The rules are an ordered priority cascade, not independent tests. They are
// a best-effort humanoid heuristic and are not expected to be correct for
// non-humanoid topologies.
func Classify(island, whole mathutil.Bounds) Class {
	center := island.Center()
	size := whole.Size()

	relX := (center[0] - whole.Min[0]) / max(size[0], ExtentFloor)
	relZ := (center[2] - whole.Min[2]) / max(size[2], ExtentFloor)
	relVolume := island.Volume() / max(whole.Volume(), ExtentFloor)

	// Large island near center = body.
	if relVolume > 0.3 {
		return ClassBody
	}

	// High up = head/antenna.
	if relZ > 0.8 {
		return ClassHead
	}

	// Low = feet/legs.
	if relZ < 0.3 {
		if relX < 0.4 {
			return ClassLegL
		}
		if relX > 0.6 {
			return ClassLegR
		}
		return ClassLeg
	}

	// Middle height, far from center = arms/claws.
	if relX < 0.3 {
		return ClassArmL
	}
	if relX > 0.7 {
		return ClassArmR
	}

	return ClassAppendage
}
