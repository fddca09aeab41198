// Package anim synthesizes the cyclic walk animation and models the sparse
// keyframe clip the exporter serializes.
package anim

import (
	"sort"

	"autorig/internal/mathutil"
	"autorig/internal/rig"
)

// RotationKey is a bone-local Euler XYZ rotation (radians) at a frame.
type RotationKey struct {
	Frame int
	Euler mathutil.Vec3
}

// LocationKey is a translation offset from rest at a frame.
type LocationKey struct {
	Frame  int
	Offset mathutil.Vec3
}

// Track holds one bone's sparse keys, frames strictly increasing.
type Track struct {
	Bone      string
	Rotations []RotationKey
	Locations []LocationKey
}

// Clip is a cyclic animation: per-bone sparse keys over [Start, End].
// The last keyframe repeats the first gait phase so looping is seamless.
type Clip struct {
	Name   string
	Start  int
	End    int
	tracks map[string]*Track
	order  []string
}

func NewClip(name string, start, end int) *Clip {
	return &Clip{
		Name:   name,
		Start:  start,
		End:    end,
		tracks: make(map[string]*Track),
	}
}

func (c *Clip) track(bone string) *Track {
	t, ok := c.tracks[bone]
	if !ok {
		t = &Track{Bone: bone}
		c.tracks[bone] = t
		c.order = append(c.order, bone)
	}
	return t
}

// SetRotation keys a rotation. A repeated frame overwrites the earlier key.
func (c *Clip) SetRotation(bone string, frame int, euler mathutil.Vec3) {
	t := c.track(bone)
	t.Rotations = insertRotation(t.Rotations, RotationKey{Frame: frame, Euler: euler})
}

// SetLocation keys a translation offset.
func (c *Clip) SetLocation(bone string, frame int, offset mathutil.Vec3) {
	t := c.track(bone)
	t.Locations = insertLocation(t.Locations, LocationKey{Frame: frame, Offset: offset})
}

// Bones lists keyed bone names in first-keyed order.
func (c *Clip) Bones() []string {
	return c.order
}

// Track returns the track for a bone, or nil.
func (c *Clip) Track(bone string) *Track {
	return c.tracks[bone]
}

// PoseAt samples every track at the given frame: the value of the latest key
// at or before the frame, or the first key when the frame precedes it.
func (c *Clip) PoseAt(frame int) map[string]rig.BonePose {
	pose := make(map[string]rig.BonePose, len(c.order))
	for _, bone := range c.order {
		t := c.tracks[bone]
		var bp rig.BonePose
		for _, k := range t.Rotations {
			if k.Frame > frame {
				break
			}
			bp.Rotation = k.Euler
		}
		for _, k := range t.Locations {
			if k.Frame > frame {
				break
			}
			bp.Location = k.Offset
		}
		pose[bone] = bp
	}
	return pose
}

func insertRotation(keys []RotationKey, k RotationKey) []RotationKey {
	i := sort.Search(len(keys), func(j int) bool { return keys[j].Frame >= k.Frame })
	if i < len(keys) && keys[i].Frame == k.Frame {
		keys[i] = k
		return keys
	}
	keys = append(keys, RotationKey{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	return keys
}

func insertLocation(keys []LocationKey, k LocationKey) []LocationKey {
	i := sort.Search(len(keys), func(j int) bool { return keys[j].Frame >= k.Frame })
	if i < len(keys) && keys[i].Frame == k.Frame {
		keys[i] = k
		return keys
	}
	keys = append(keys, LocationKey{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	return keys
}
