package gltfio

import (
	"math"
	"testing"

	"autorig/internal/anim"
	"autorig/internal/mathutil"
	"autorig/internal/mesh"
	"autorig/internal/rig"
	"autorig/internal/skin"
)

func sampleMesh() *mesh.Mesh {
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	m := &mesh.Mesh{
		Name: "biped",
		Positions: []mathutil.Vec3{
			{-0.5, -0.25, 0}, {0.5, -0.25, 0}, {0.5, 0.25, 2}, {-0.5, 0.25, 2},
		},
		Triangles: tris,
	}
	m.Edges = mesh.EdgesFromTriangles(tris)
	return m
}

func riggedSample() (*mesh.Mesh, *rig.Skeleton, skin.VertexWeights, *anim.Clip) {
	m := sampleMesh()
	skel := rig.Build(m.Bounds())
	vw := skin.NewVertexWeights(m.VertexCount())
	for v := range vw {
		vw.AssignFull(v, rig.BoneSpine)
	}
	clip := anim.SynthesizeWalk(skel, anim.DefaultWalkParams())
	return m, skel, vw, clip
}

func TestBuildDocumentRoundtripsGeometry(t *testing.T) {
	m, skel, vw, clip := riggedSample()

	doc, err := BuildDocument(m, skel, vw, clip)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	back, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}

	if back.VertexCount() != m.VertexCount() {
		t.Fatalf("vertex count = %d, want %d", back.VertexCount(), m.VertexCount())
	}
	for i := range m.Positions {
		if back.Positions[i].Sub(m.Positions[i]).Len() > 1e-5 {
			t.Errorf("vertex %d: %v, want %v (axis conversion must be self-inverse)",
				i, back.Positions[i], m.Positions[i])
		}
	}
	if len(back.Triangles) != len(m.Triangles) {
		t.Errorf("triangles = %d, want %d", len(back.Triangles), len(m.Triangles))
	}
}

func TestBuildDocumentSkinStructure(t *testing.T) {
	m, skel, vw, clip := riggedSample()

	doc, err := BuildDocument(m, skel, vw, clip)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if len(doc.Skins) != 1 {
		t.Fatalf("skins = %d, want 1", len(doc.Skins))
	}
	sk := doc.Skins[0]
	if len(sk.Joints) != len(skel.Bones) {
		t.Errorf("joints = %d, want %d", len(sk.Joints), len(skel.Bones))
	}
	if sk.InverseBindMatrices == nil {
		t.Error("skin has no inverse bind matrices")
	}

	// One node per bone plus the mesh node.
	if got, want := len(doc.Nodes), len(skel.Bones)+1; got != want {
		t.Errorf("nodes = %d, want %d", got, want)
	}

	// Joint node names mirror bone names in declaration order.
	for i, b := range skel.Bones {
		if name := doc.Nodes[sk.Joints[i]].Name; name != b.Name {
			t.Errorf("joint %d name = %q, want %q", i, name, b.Name)
		}
	}
}

func TestBuildDocumentAnimation(t *testing.T) {
	m, skel, vw, clip := riggedSample()

	doc, err := BuildDocument(m, skel, vw, clip)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if len(doc.Animations) != 1 {
		t.Fatalf("animations = %d, want 1", len(doc.Animations))
	}
	a := doc.Animations[0]
	if a.Name != "WalkCycle" {
		t.Errorf("animation name = %q, want WalkCycle", a.Name)
	}
	if len(a.Channels) != len(a.Samplers) {
		t.Errorf("channels (%d) and samplers (%d) must pair up", len(a.Channels), len(a.Samplers))
	}

	// 6 rotation tracks (thighs, shins, upper arms) + 1 root translation.
	if len(a.Channels) != 7 {
		t.Errorf("channels = %d, want 7", len(a.Channels))
	}

	for _, s := range a.Samplers {
		acc := doc.Accessors[s.Input]
		if len(acc.Min) != 1 || len(acc.Max) != 1 {
			t.Error("sampler input accessor missing min/max")
			continue
		}
		if acc.Min[0] != 0 {
			t.Errorf("first key time = %v, want 0 (frame 1)", acc.Min[0])
		}
		wantEnd := 23.0 / FrameRate
		if math.Abs(acc.Max[0]-wantEnd) > 1e-6 {
			t.Errorf("last key time = %v, want %v (frame 24)", acc.Max[0], wantEnd)
		}
	}
}

func TestSkinAttributesRenormalizeAfterTruncation(t *testing.T) {
	skel := rig.NewSkeleton()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		skel.Add(name, mathutil.Vec3{}, mathutil.Vec3{0, 0, 1}, "")
	}

	vw := skin.VertexWeights{
		// Five equal influences: only four slots exist, the row must still
		// sum to 1 after packing.
		{
			{Bone: "a", Weight: 0.2}, {Bone: "b", Weight: 0.2},
			{Bone: "c", Weight: 0.2}, {Bone: "d", Weight: 0.2},
			{Bone: "e", Weight: 0.2},
		},
		// An influence on an unknown bone is dropped the same way.
		{{Bone: "a", Weight: 0.5}, {Bone: "ghost", Weight: 0.5}},
	}

	_, weights := skinAttributes(skel, vw)

	for v := range vw {
		var sum float32
		for _, w := range weights[v] {
			sum += w
		}
		if math.Abs(float64(sum)-1.0) > 1e-5 {
			t.Errorf("vertex %d packed weights sum = %v, want 1.0", v, sum)
		}
	}
	if weights[0][0] != 0.25 {
		t.Errorf("slot 0 = %v, want 0.25 after renormalizing four kept influences", weights[0][0])
	}
	if weights[1][0] != 1 {
		t.Errorf("vertex 1 slot 0 = %v, want full weight after dropping unknown bone", weights[1][0])
	}
}

func TestFromDocumentNoMesh(t *testing.T) {
	m, skel, vw, _ := riggedSample()
	doc, err := BuildDocument(m, skel, vw, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Strip the mesh reference; only the joint hierarchy remains.
	for _, n := range doc.Nodes {
		n.Mesh = nil
	}

	if _, err := FromDocument(doc); err == nil {
		t.Fatal("expected no-mesh error")
	}
}

func TestAxisConversionSelfInverse(t *testing.T) {
	v := mathutil.Vec3{1, 2, 3}
	y := toYUp(v)
	back := toZUp(y[0], y[1], y[2])
	if back.Sub(v).Len() > 1e-9 {
		t.Errorf("toZUp(toYUp(%v)) = %v", v, back)
	}
}
