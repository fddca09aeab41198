package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"autorig/internal/config"
	"autorig/internal/gltfio"
	"autorig/internal/pipeline"
	"autorig/internal/preview"
	"autorig/internal/rig"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (JSON or YAML)")
	size := flag.Int("size", 0, "Output image edge length (default: 256)")
	texturePath := flag.String("texture", "", "Albedo texture override (PNG, JPEG, or TGA)")
	frame := flag.Int("frame", 0, "Pose the rig at this walk-cycle frame (0 = rest pose)")
	noOverlay := flag.Bool("no-overlay", false, "Hide the skeleton overlay")

	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.glb output.webp\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	inPath := flag.Arg(0)
	outPath := flag.Arg(1)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{PreviewSize: *size})

	m, err := gltfio.Import(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := pipeline.Rig(m, pipeline.Options{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var tex *image.NRGBA
	if *texturePath != "" {
		tex, err = preview.LoadTexture(*texturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var pose map[string]rig.BonePose
	if *frame > 0 {
		pose = res.Clip.PoseAt(*frame)
	}

	img := preview.Render(res.Mesh, res.Skeleton, res.Weights, preview.Options{
		Size:        cfg.PreviewSize,
		Supersample: cfg.Supersample,
		Texture:     tex,
		Pose:        pose,
		Overlay:     !*noOverlay,
	})

	if err := preview.SaveWebP(outPath, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Preview saved to: %s\n", outPath)
}
