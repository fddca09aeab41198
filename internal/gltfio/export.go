package gltfio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"autorig/internal/anim"
	"autorig/internal/mathutil"
	"autorig/internal/mesh"
	"autorig/internal/rig"
	"autorig/internal/skin"
)

// FrameRate maps keyframe numbers to animation seconds on export.
const FrameRate = 24.0

// Export writes the rigged, weighted, animated model as a GLB container.
// clip may be nil for a bind-pose-only export.
func Export(path string, m *mesh.Mesh, skel *rig.Skeleton, vw skin.VertexWeights, clip *anim.Clip) error {
	doc, err := BuildDocument(m, skel, vw, clip)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("gltfio: save %s: %w", path, err)
	}
	return nil
}

// BuildDocument assembles the glTF document: one mesh primitive with skin
// attributes, one joint node per bone, one skin, and the walk animation.
func BuildDocument(m *mesh.Mesh, skel *rig.Skeleton, vw skin.VertexWeights, clip *anim.Clip) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = toYUp(p)
	}

	attrs := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(doc, positions),
	}

	if len(m.Normals) == len(m.Positions) && len(m.Normals) > 0 {
		normals := make([][3]float32, len(m.Normals))
		for i, n := range m.Normals {
			normals[i] = toYUp(n)
		}
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	if len(m.UVs) == len(m.Positions) && len(m.UVs) > 0 {
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, m.UVs)
	}

	indices := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		indices = append(indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}

	if len(vw) == len(m.Positions) && len(skel.Bones) > 0 {
		joints, weights := skinAttributes(skel, vw)
		attrs[gltf.JOINTS_0] = modeler.WriteJoints(doc, joints)
		attrs[gltf.WEIGHTS_0] = modeler.WriteWeights(doc, weights)
	}

	doc.Meshes = []*gltf.Mesh{{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attrs,
		}},
	}}

	meshNode := addNode(doc, &gltf.Node{Name: m.Name, Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, meshNode)

	if len(skel.Bones) > 0 {
		jointBase, rootJoint := addJointNodes(doc, skel)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, rootJoint)

		ibms := inverseBindMatrices(skel)
		ibmAcc := modeler.WriteAccessor(doc, 0, ibms)

		jointIdx := make([]uint32, len(skel.Bones))
		for i := range skel.Bones {
			jointIdx[i] = jointBase + uint32(i)
		}
		doc.Skins = []*gltf.Skin{{
			Name:                "Rig",
			InverseBindMatrices: gltf.Index(ibmAcc),
			Skeleton:            gltf.Index(rootJoint),
			Joints:              jointIdx,
		}}
		doc.Nodes[meshNode].Skin = gltf.Index(0)

		if clip != nil {
			writeAnimation(doc, skel, clip, jointBase)
		}
	}

	return doc, nil
}

// skinAttributes packs each vertex's influences into fixed 4-wide JOINTS_0
// and WEIGHTS_0 rows, indexed against the skin's joint order (= skeleton
// declaration order).
func skinAttributes(skel *rig.Skeleton, vw skin.VertexWeights) ([][4]uint16, [][4]float32) {
	joints := make([][4]uint16, len(vw))
	weights := make([][4]float32, len(vw))

	for v := range vw {
		slot := 0
		var total float32
		for _, bw := range vw[v] {
			bi := skel.IndexOf(bw.Bone)
			if bi < 0 || slot >= 4 {
				continue
			}
			joints[v][slot] = uint16(bi)
			weights[v][slot] = float32(bw.Weight)
			total += weights[v][slot]
			slot++
		}

		// Influences past the 4 slots (or on unknown bones) were dropped;
		// renormalize so the exported row still sums to 1.
		if total > 0 && slot > 0 {
			for s := 0; s < slot; s++ {
				weights[v][s] /= total
			}
		}
	}
	return joints, weights
}

// addJointNodes creates one node per bone with translations relative to the
// parent joint. Returns the index of the first joint node and of the root.
func addJointNodes(doc *gltf.Document, skel *rig.Skeleton) (uint32, uint32) {
	base := uint32(len(doc.Nodes))
	root := base

	for i := range skel.Bones {
		b := &skel.Bones[i]

		head := b.Head
		if pi := skel.ParentIndex(i); pi >= 0 {
			head = head.Sub(skel.Bones[pi].Head)
		}
		t := toYUp(head)

		idx := addNode(doc, &gltf.Node{
			Name:        b.Name,
			Translation: [3]float64{float64(t[0]), float64(t[1]), float64(t[2])},
		})

		if pi := skel.ParentIndex(i); pi >= 0 {
			parent := doc.Nodes[base+uint32(pi)]
			parent.Children = append(parent.Children, idx)
		} else {
			root = idx
		}
	}

	return base, root
}

// inverseBindMatrices returns the translation-only IBM per joint: glTF wants
// the inverse of the joint's world bind transform, column-major.
func inverseBindMatrices(skel *rig.Skeleton) [][4][4]float32 {
	out := make([][4][4]float32, len(skel.Bones))
	for i := range skel.Bones {
		h := toYUp(skel.Bones[i].Head)
		m := mgl32.Translate3D(-h[0], -h[1], -h[2])
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				out[i][c][r] = m[c*4+r]
			}
		}
	}
	return out
}

// writeAnimation serializes the clip: one rotation channel per rotated bone,
// one translation channel per bob target, linear interpolation. Keyframe
// tangent shaping is the consumer's concern.
func writeAnimation(doc *gltf.Document, skel *rig.Skeleton, clip *anim.Clip, jointBase uint32) {
	a := &gltf.Animation{Name: clip.Name}

	for _, bone := range clip.Bones() {
		bi := skel.IndexOf(bone)
		if bi < 0 {
			continue
		}
		node := jointBase + uint32(bi)
		track := clip.Track(bone)

		if len(track.Rotations) > 0 {
			times := make([]float32, len(track.Rotations))
			quats := make([][4]float32, len(track.Rotations))
			for i, k := range track.Rotations {
				times[i] = frameToSeconds(k.Frame)
				quats[i] = toYUpQuat(k.Euler)
			}
			input := writeTimes(doc, times)
			output := modeler.WriteAccessor(doc, 0, quats)

			a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
				Input:         input,
				Output:        output,
				Interpolation: gltf.InterpolationLinear,
			})
			a.Channels = append(a.Channels, &gltf.Channel{
				Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
				Target:  gltf.ChannelTarget{Node: gltf.Index(node), Path: gltf.TRSRotation},
			})
		}

		if len(track.Locations) > 0 {
			rest := doc.Nodes[node].Translation

			times := make([]float32, len(track.Locations))
			values := make([][3]float32, len(track.Locations))
			for i, k := range track.Locations {
				times[i] = frameToSeconds(k.Frame)
				off := toYUp(k.Offset)
				values[i] = [3]float32{
					float32(rest[0]) + off[0],
					float32(rest[1]) + off[1],
					float32(rest[2]) + off[2],
				}
			}
			input := writeTimes(doc, times)
			output := modeler.WriteAccessor(doc, 0, values)

			a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
				Input:         input,
				Output:        output,
				Interpolation: gltf.InterpolationLinear,
			})
			a.Channels = append(a.Channels, &gltf.Channel{
				Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
				Target:  gltf.ChannelTarget{Node: gltf.Index(node), Path: gltf.TRSTranslation},
			})
		}
	}

	if len(a.Channels) > 0 {
		doc.Animations = append(doc.Animations, a)
	}
}

// writeTimes stores a sampler input accessor; min/max are required for
// animation inputs.
func writeTimes(doc *gltf.Document, times []float32) uint32 {
	idx := writeScalars(doc, times)
	acc := doc.Accessors[idx]
	acc.Min = []float64{float64(times[0])}
	acc.Max = []float64{float64(times[len(times)-1])}
	return idx
}

func writeScalars(doc *gltf.Document, data []float32) uint32 {
	return modeler.WriteAccessor(doc, 0, data)
}

func frameToSeconds(frame int) float32 {
	return float32(frame-1) / FrameRate
}

// toYUpQuat converts a pipeline-space Euler rotation to a glTF-space
// quaternion (x, y, z, w).
func toYUpQuat(euler mathutil.Vec3) [4]float32 {
	q := mathutil.EulerToQuat(euler[0], euler[1], euler[2])
	// Axis map (x, y, z) -> (x, z, -y), scalar part unchanged.
	return [4]float32{float32(q[0]), float32(q[2]), float32(-q[1]), float32(q[3])}
}

func addNode(doc *gltf.Document, n *gltf.Node) uint32 {
	doc.Nodes = append(doc.Nodes, n)
	return uint32(len(doc.Nodes) - 1)
}
