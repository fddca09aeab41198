// Package preview renders a rigged character to a WebP image: an
// orthographic front view of the (optionally posed) mesh with the skeleton
// drawn on top. It exists so a batch run can be spot-checked without opening
// every GLB in a viewer.
package preview

import (
	"image"

	"autorig/internal/mathutil"
	"autorig/internal/mesh"
	"autorig/internal/rig"
	"autorig/internal/skin"
)

// Options controls one preview render.
type Options struct {
	Size        int          // output edge length in pixels
	Supersample int          // render at Size*Supersample, then downsample
	Texture     *image.NRGBA // optional albedo override; nil renders flat gray
	Pose        map[string]rig.BonePose
	Overlay     bool // draw the skeleton over the mesh
}

// Render draws the character front-on (camera on -Y, Z up) and returns an
// NRGBA image of opts.Size edge length.
func Render(m *mesh.Mesh, skel *rig.Skeleton, vw skin.VertexWeights, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}

	positions := m.Positions
	if len(opts.Pose) > 0 && skel != nil && len(vw) == len(m.Positions) {
		positions = DeformPositions(m, skel, vw, opts.Pose)
	}
	if len(positions) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	renderSize := opts.Size * opts.Supersample
	proj := newProjection(positions, renderSize, opts.Supersample)

	px := make([]float64, len(positions))
	py := make([]float64, len(positions))
	pz := make([]float64, len(positions))
	for i, p := range positions {
		px[i], py[i], pz[i] = proj.apply(p)
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	var defR, defG, defB, defA uint8 = 160, 160, 170, 255
	if opts.Texture != nil {
		defR, defG, defB, defA = averageColor(opts.Texture)
	}

	for _, tri := range m.Triangles {
		RasterizeTriangle(fb, px, py, pz, m.UVs, tri, opts.Texture, defR, defG, defB, defA, &lc)
	}

	if opts.Overlay && skel != nil {
		drawSkeleton(fb, skel, proj)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)

	if opts.Supersample > 1 {
		img = Downsample(img, opts.Size)
	}
	return img
}

// projection maps pipeline space (Z up, camera on -Y) onto the screen:
// screen x tracks world x, screen y is flipped world z, depth is -y so
// surfaces nearer the camera win the z-test.
type projection struct {
	center mathutil.Vec3
	scale  float64
	size   int
}

func newProjection(positions []mathutil.Vec3, renderSize, supersample int) projection {
	b := mathutil.BoundsOf(positions)
	center := b.Center()
	size := b.Size()

	span := size[0]
	if size[2] > span {
		span = size[2]
	}
	if span < 0.001 {
		span = 0.001
	}

	margin := 16 * supersample
	return projection{
		center: center,
		scale:  float64(renderSize-2*margin) / span,
		size:   renderSize,
	}
}

func (p projection) apply(v mathutil.Vec3) (x, y, z float64) {
	half := float64(p.size) / 2
	x = half + (v[0]-p.center[0])*p.scale
	y = half - (v[2]-p.center[2])*p.scale
	z = -(v[1] - p.center[1]) * p.scale
	return
}

// drawSkeleton overlays each bone as a line from head to tail with a square
// joint marker at the head. Drawn without depth so the rig is always visible.
func drawSkeleton(fb *FrameBuffer, skel *rig.Skeleton, proj projection) {
	const (
		boneR, boneG, boneB    = 255, 200, 40
		jointR, jointG, jointB = 255, 80, 40
	)

	for i := range skel.Bones {
		b := &skel.Bones[i]
		hx, hy, _ := proj.apply(b.Head)
		tx, ty, _ := proj.apply(b.Tail)
		drawLine(fb, int(hx+0.5), int(hy+0.5), int(tx+0.5), int(ty+0.5), boneR, boneG, boneB)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				fb.SetOver(int(hx+0.5)+dx, int(hy+0.5)+dy, jointR, jointG, jointB, 255)
			}
		}
	}
}

// drawLine is Bresenham's algorithm over the framebuffer.
func drawLine(fb *FrameBuffer, x0, y0, x1, y1 int, r, g, b uint8) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		fb.SetOver(x0, y0, r, g, b, 255)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	total := w * h
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(total)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}
