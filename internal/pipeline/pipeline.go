// Package pipeline chains the rigging stages end to end: import, island
// analysis, skeleton build, weight binding and repair, walk-cycle synthesis,
// export. Progress lines go to a caller-supplied writer so batch mode can
// silence them.
package pipeline

import (
	"fmt"
	"io"

	"autorig/internal/anim"
	"autorig/internal/config"
	"autorig/internal/gltfio"
	"autorig/internal/mesh"
	"autorig/internal/rig"
	"autorig/internal/skin"
)

// Options configures one pipeline run. Zero-value fields fall back to the
// resolved config defaults and the in-process binder/smoother.
type Options struct {
	Config   config.Config
	Binder   skin.Binder
	Smoother skin.Smoother
	Stdout   io.Writer
}

// Result carries every artifact of a rigging run so callers can inspect,
// preview, or re-export without repeating the work.
type Result struct {
	Mesh     *mesh.Mesh
	Islands  []mesh.Island
	Skeleton *rig.Skeleton
	Weights  skin.VertexWeights
	Clip     *anim.Clip
}

// Run rigs one GLB file and writes the animated result.
func Run(inPath, outPath string, opts Options) error {
	out := stdout(opts)

	fmt.Fprintln(out, "Importing model...")
	m, err := gltfio.Import(inPath)
	if err != nil {
		return err
	}

	res, err := Rig(m, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Exporting...")
	if err := gltfio.Export(outPath, res.Mesh, res.Skeleton, res.Weights, res.Clip); err != nil {
		return err
	}

	fmt.Fprintf(out, "Done! Animated model saved to: %s\n", outPath)
	return nil
}

// Rig runs every in-memory stage on an already imported mesh.
func Rig(m *mesh.Mesh, opts Options) (*Result, error) {
	out := stdout(opts)

	cfg := opts.Config
	cfg.Resolve(config.Flags{})

	binder := opts.Binder
	if binder == nil {
		binder = skin.ProximityBinder{MaxInfluences: cfg.MaxInfluences * 2}
	}
	smoother := opts.Smoother
	if smoother == nil {
		smoother = skin.NeighborSmoother{Factor: cfg.SmoothFactor}
	}

	fmt.Fprintln(out, "Analyzing mesh bounds...")
	bounds := m.Bounds()
	size := bounds.Size()
	fmt.Fprintf(out, "  Size: %.2f x %.2f x %.2f\n", size[0], size[1], size[2])

	fmt.Fprintln(out, "Finding mesh islands...")
	islands := mesh.FindIslands(m)
	fmt.Fprintf(out, "  Found %d islands\n", len(islands))
	for i, is := range islands {
		if i >= 5 {
			break
		}
		fmt.Fprintf(out, "  Island %d: %d verts, type=%s\n",
			i, is.VertexCount(), mesh.Classify(is.Bounds, bounds))
	}

	fmt.Fprintln(out, "Creating armature...")
	skel := rig.Build(bounds)

	fmt.Fprintln(out, "Parenting with automatic weights...")
	vw, err := binder.Bind(m, skel)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Reassigning weights for isolated parts...")
	if err := skin.ReassignIslands(vw, islands, skel, cfg.SmallIslandFraction); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Cleaning up weights...")
	skin.Clean(vw, cfg.WeightThreshold, cfg.MaxInfluences)
	if err := skin.EnsureCoverage(vw, m, skel, cfg.CoverageEpsilon); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Smoothing weights...")
	vw = smoother.Smooth(vw, m, cfg.SmoothIterations)

	fmt.Fprintln(out, "Creating walk cycle animation...")
	clip := anim.SynthesizeWalk(skel, anim.WalkParams{
		LegSwingDeg: cfg.LegSwingDeg,
		LegLiftDeg:  cfg.LegLiftDeg,
		ArmSwingDeg: cfg.ArmSwingDeg,
		BodyBob:     cfg.BodyBob,
		Frames:      cfg.KeyFrames,
	})

	return &Result{
		Mesh:     m,
		Islands:  islands,
		Skeleton: skel,
		Weights:  vw,
		Clip:     clip,
	}, nil
}

func stdout(opts Options) io.Writer {
	if opts.Stdout != nil {
		return opts.Stdout
	}
	return io.Discard
}
