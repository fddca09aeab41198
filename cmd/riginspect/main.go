package main

import (
	"fmt"
	"os"

	"autorig/internal/gltfio"
	"autorig/internal/mesh"
	"autorig/internal/rig"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s model.glb\n", os.Args[0])
		os.Exit(1)
	}

	m, err := gltfio.Import(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	bounds := m.Bounds()
	size := bounds.Size()
	fmt.Printf("Mesh: %q, verts=%d, tris=%d, edges=%d\n",
		m.Name, m.VertexCount(), len(m.Triangles), len(m.Edges))
	fmt.Printf("  BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
		bounds.Min[0], bounds.Max[0], bounds.Min[1], bounds.Max[1], bounds.Min[2], bounds.Max[2])
	fmt.Printf("  Size: %.2f x %.2f x %.2f\n", size[0], size[1], size[2])

	islands := mesh.FindIslands(m)
	fmt.Printf("Islands: %d\n", len(islands))
	for i, is := range islands {
		c := is.Bounds.Center()
		isz := is.Bounds.Size()
		fmt.Printf("  Island[%d]: verts=%d, type=%s\n",
			i, is.VertexCount(), mesh.Classify(is.Bounds, bounds))
		fmt.Printf("    center=(%.2f, %.2f, %.2f), size=%.2f x %.2f x %.2f, volume=%.4f\n",
			c[0], c[1], c[2], isz[0], isz[1], isz[2], is.Volume)
	}

	skel := rig.Build(bounds)
	fmt.Printf("Armature: %d bones\n", len(skel.Bones))
	for i, b := range skel.Bones {
		conn := ""
		if b.Connected {
			conn = " connected"
		}
		fmt.Printf("  Bone[%d]: %s parent=%q head=(%.2f, %.2f, %.2f) tail=(%.2f, %.2f, %.2f)%s\n",
			i, b.Name, b.Parent,
			b.Head[0], b.Head[1], b.Head[2],
			b.Tail[0], b.Tail[1], b.Tail[2], conn)
	}
}
