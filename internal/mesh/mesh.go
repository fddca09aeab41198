package mesh

import (
	"sort"

	"autorig/internal/mathutil"
)

// Mesh holds one model's geometry in world space, Z-up.
// Immutable once loaded: vertex indices are stable identifiers used by
// islands, weights and nearest-bone lookups.
type Mesh struct {
	Name      string
	Positions []mathutil.Vec3
	Normals   []mathutil.Vec3 // empty or len(Positions)
	UVs       [][2]float32    // empty or len(Positions)
	Triangles [][3]int
	Edges     [][2]int // undirected, v0 < v1, sorted, no duplicates
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Bounds computes the whole-mesh axis-aligned bounding box.
func (m *Mesh) Bounds() mathutil.Bounds {
	return mathutil.BoundsOf(m.Positions)
}

// EdgesFromTriangles derives the undirected edge set of a triangle list.
// Each edge appears once with its smaller vertex index first; the result is
// sorted so downstream traversal order is deterministic.
func EdgesFromTriangles(tris [][3]int) [][2]int {
	seen := make(map[[2]int]struct{}, len(tris)*3)
	for _, t := range tris {
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			seen[[2]int{a, b}] = struct{}{}
		}
	}

	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// adjacency builds a neighbor list per vertex from the edge set.
func adjacency(vertexCount int, edges [][2]int) [][]int {
	adj := make([][]int, vertexCount)
	for _, e := range edges {
		v1, v2 := e[0], e[1]
		if v1 < 0 || v2 < 0 || v1 >= vertexCount || v2 >= vertexCount {
			continue
		}
		adj[v1] = append(adj[v1], v2)
		adj[v2] = append(adj[v2], v1)
	}
	return adj
}

// Neighbors returns the adjacency list of the mesh. Used by the weight
// smoother; island detection builds its own from the same edges.
func (m *Mesh) Neighbors() [][]int {
	return adjacency(m.VertexCount(), m.Edges)
}
