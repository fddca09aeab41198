package mesh

import (
	"sort"

	"autorig/internal/mathutil"
)

// Island is a maximal connected set of vertex indices under edge adjacency,
// with its world-space bounds cached. Islands partition the mesh's vertex
// set: every vertex belongs to exactly one island.
type Island struct {
	Verts  []int // ascending
	Bounds mathutil.Bounds
	Volume float64
}

// VertexCount returns the number of vertices in the island.
func (is *Island) VertexCount() int {
	return len(is.Verts)
}

// FindIslands detects disconnected mesh islands via flood fill over the edge
// adjacency and returns them sorted by volume, largest first (the presumed
// main body leads). Non-destructive; an empty mesh yields an empty list and
// an edge-less vertex forms a singleton island with zero extents.
func FindIslands(m *Mesh) []Island {
	n := m.VertexCount()
	adj := adjacency(n, m.Edges)
	visited := make([]bool, n)

	var islands []Island
	var queue []int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		var verts []int
		queue = append(queue[:0], start)
		visited[start] = true

		for len(queue) > 0 {
			v := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			verts = append(verts, v)

			for _, nb := range adj[v] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}

		sort.Ints(verts)

		b := mathutil.EmptyBounds()
		for _, v := range verts {
			b.Extend(m.Positions[v])
		}

		islands = append(islands, Island{
			Verts:  verts,
			Bounds: b,
			Volume: b.Volume(),
		})
	}

	// Largest first; stable so equal volumes keep discovery order.
	sort.SliceStable(islands, func(i, j int) bool {
		return islands[i].Volume > islands[j].Volume
	})

	return islands
}
