// Package gltfio moves models across the GLB container boundary. The
// algorithmic core is format-agnostic; everything glTF-specific (accessors,
// node graphs, axis convention) stays here.
//
// glTF is Y-up; the pipeline works Z-up like the authoring tools the input
// models come from. Import converts (x, y, z) -> (x, -z, y) and export
// applies the inverse.
package gltfio

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"autorig/internal/mathutil"
	"autorig/internal/mesh"
)

// ErrNoMesh is the fail-fast condition of the whole pipeline: the imported
// scene contains nothing to rig.
var ErrNoMesh = errors.New("gltfio: no mesh found in scene")

// Import reads a GLB (or glTF) file and returns its first mesh with all
// primitives merged, positions in world space, Z-up.
func Import(path string) (*mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltfio: open %s: %w", path, err)
	}
	return FromDocument(doc)
}

// FromDocument extracts the first mesh node of the default scene.
// Node transforms along the path from the scene root are applied, so
// vertex positions come out in world space.
func FromDocument(doc *gltf.Document) (*mesh.Mesh, error) {
	nodeIdx, world, ok := findMeshNode(doc)
	if !ok {
		return nil, ErrNoMesh
	}

	node := doc.Nodes[nodeIdx]
	gm := doc.Meshes[*node.Mesh]

	m := &mesh.Mesh{Name: gm.Name}
	if m.Name == "" {
		m.Name = node.Name
	}

	for _, prim := range gm.Primitives {
		if err := appendPrimitive(doc, m, prim, world); err != nil {
			return nil, err
		}
	}
	if len(m.Positions) == 0 {
		return nil, ErrNoMesh
	}

	m.Edges = mesh.EdgesFromTriangles(m.Triangles)
	return m, nil
}

// findMeshNode walks the default scene depth-first and returns the first
// node referencing a mesh, along with its composed world transform.
func findMeshNode(doc *gltf.Document) (uint32, mgl32.Mat4, bool) {
	var sceneNodes []uint32
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		sceneNodes = doc.Scenes[*doc.Scene].Nodes
	} else if len(doc.Scenes) > 0 {
		sceneNodes = doc.Scenes[0].Nodes
	}

	var walk func(idx uint32, parent mgl32.Mat4) (uint32, mgl32.Mat4, bool)
	walk = func(idx uint32, parent mgl32.Mat4) (uint32, mgl32.Mat4, bool) {
		if int(idx) >= len(doc.Nodes) {
			return 0, mgl32.Ident4(), false
		}
		node := doc.Nodes[idx]
		world := parent.Mul4(localTransform(node))

		if node.Mesh != nil && int(*node.Mesh) < len(doc.Meshes) {
			return idx, world, true
		}
		for _, child := range node.Children {
			if ni, w, ok := walk(child, world); ok {
				return ni, w, true
			}
		}
		return 0, mgl32.Ident4(), false
	}

	for _, root := range sceneNodes {
		if ni, w, ok := walk(root, mgl32.Ident4()); ok {
			return ni, w, true
		}
	}
	return 0, mgl32.Ident4(), false
}

// localTransform composes a node's matrix, or its TRS when no matrix is set.
func localTransform(node *gltf.Node) mgl32.Mat4 {
	if node.Matrix != gltf.DefaultMatrix && node.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range node.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	trans := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2]))
	rot := mgl32.Quat{
		W: float32(r[3]),
		V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
	}.Mat4()
	scale := mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2]))

	return trans.Mul4(rot).Mul4(scale)
}

// appendPrimitive merges one primitive's geometry into m, offsetting indices.
func appendPrimitive(doc *gltf.Document, m *mesh.Mesh, prim *gltf.Primitive, world mgl32.Mat4) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("gltfio: read positions: %w", err)
	}

	base := len(m.Positions)
	for _, p := range positions {
		wp := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
		m.Positions = append(m.Positions, toZUp(wp.X(), wp.Y(), wp.Z()))
	}

	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
		if err != nil {
			return fmt.Errorf("gltfio: read normals: %w", err)
		}
		for _, n := range normals {
			wn := world.Mul4x1(mgl32.Vec4{n[0], n[1], n[2], 0})
			m.Normals = append(m.Normals, toZUp(wn.X(), wn.Y(), wn.Z()).Normalize())
		}
	}

	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return fmt.Errorf("gltfio: read texcoords: %w", err)
		}
		m.UVs = append(m.UVs, uvs...)
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("gltfio: read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			m.Triangles = append(m.Triangles, [3]int{
				base + int(indices[i]),
				base + int(indices[i+1]),
				base + int(indices[i+2]),
			})
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			m.Triangles = append(m.Triangles, [3]int{base + i, base + i + 1, base + i + 2})
		}
	}

	return nil
}

// toZUp converts a glTF Y-up vector into the pipeline's Z-up space.
func toZUp(x, y, z float32) mathutil.Vec3 {
	return mathutil.Vec3{float64(x), -float64(z), float64(y)}
}

// toYUp is the inverse conversion, used on export.
func toYUp(v mathutil.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[2]), float32(-v[1])}
}
