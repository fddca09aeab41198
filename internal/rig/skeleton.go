package rig

import (
	"errors"

	"autorig/internal/mathutil"
)

// Standard bone names produced by the builder. Side-specific bones carry the
// ".L"/".R" suffix, e.g. "thigh.L".
const (
	BoneRoot     = "root"
	BoneSpine    = "spine"
	BoneChest    = "chest"
	BoneNeck     = "neck"
	BoneHead     = "head"
	BoneShoulder = "shoulder"
	BoneUpperArm = "upper_arm"
	BoneForearm  = "forearm"
	BoneHand     = "hand"
	BoneThigh    = "thigh"
	BoneShin     = "shin"
	BoneFoot     = "foot"
)

// Left and Right suffix a side-specific bone name.
func Left(name string) string  { return name + ".L" }
func Right(name string) string { return name + ".R" }

// ConnectTol is the head-to-parent-tail distance under which a bone renders
// as a continuous chain with its parent.
const ConnectTol = 0.01

// ErrNoBones is returned by nearest-bone queries on an empty skeleton.
// That state indicates a skeleton-build bug, never user input.
var ErrNoBones = errors.New("rig: nearest bone lookup on empty skeleton")

// Bone is one node of the hierarchy. Parent is a name reference into the
// owning skeleton; the empty string marks a root.
type Bone struct {
	Name      string
	Head      mathutil.Vec3
	Tail      mathutil.Vec3
	Parent    string
	Connected bool
}

// Mid returns the head/tail midpoint, the reference point for
// nearest-bone distance queries.
func (b *Bone) Mid() mathutil.Vec3 {
	return b.Head.Add(b.Tail).Scale(0.5)
}

// Skeleton owns an ordered collection of bones forming a tree with a single
// root. Bones are added parents-first, so parent references always resolve.
type Skeleton struct {
	Bones []Bone
	index map[string]int
}

func NewSkeleton() *Skeleton {
	return &Skeleton{index: make(map[string]int)}
}

// Add appends a bone. A parent name that is not (yet) in the skeleton is
// dropped, leaving the bone unparented — the builder always adds parents
// first, so this only happens for externally constructed partial rigs.
// Connected is set when the head coincides with the parent's tail.
func (s *Skeleton) Add(name string, head, tail mathutil.Vec3, parent string) *Bone {
	b := Bone{Name: name, Head: head, Tail: tail}
	if parent != "" {
		if pi, ok := s.index[parent]; ok {
			b.Parent = parent
			b.Connected = head.Sub(s.Bones[pi].Tail).Len() < ConnectTol
		}
	}
	s.index[name] = len(s.Bones)
	s.Bones = append(s.Bones, b)
	return &s.Bones[len(s.Bones)-1]
}

// ByName returns the bone with the given name, or nil.
func (s *Skeleton) ByName(name string) *Bone {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return &s.Bones[i]
}

// IndexOf returns the declaration index of a bone, or -1.
func (s *Skeleton) IndexOf(name string) int {
	i, ok := s.index[name]
	if !ok {
		return -1
	}
	return i
}

// ParentIndex returns the declaration index of a bone's parent, or -1.
func (s *Skeleton) ParentIndex(i int) int {
	p := s.Bones[i].Parent
	if p == "" {
		return -1
	}
	return s.IndexOf(p)
}

// Nearest finds the bone whose midpoint is closest to p. Ties resolve to the
// first bone in declaration order. Fails loudly on an empty skeleton.
func (s *Skeleton) Nearest(p mathutil.Vec3) (string, error) {
	if len(s.Bones) == 0 {
		return "", ErrNoBones
	}

	best := 0
	bestDist := p.Sub(s.Bones[0].Mid()).Len()
	for i := 1; i < len(s.Bones); i++ {
		if d := p.Sub(s.Bones[i].Mid()).Len(); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return s.Bones[best].Name, nil
}
