package main

import (
	"flag"
	"fmt"
	"os"

	"autorig/internal/config"
	"autorig/internal/gltfio"
	"autorig/internal/pipeline"
	"autorig/internal/preview"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (JSON or YAML)")
	previewOut := flag.String("preview", "", "Also render a WebP preview of the rigged model to this path")

	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.glb output.glb\n", os.Args[0])
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
	cfg.Resolve(config.Flags{})

	fmt.Printf("Input: %s\n", inPath)
	fmt.Printf("Output: %s\n", outPath)

	opts := pipeline.Options{Config: cfg, Stdout: os.Stdout}

	if *previewOut == "" {
		if err := pipeline.Run(inPath, outPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Preview requested: keep the intermediate artifacts around.
	if err := runWithPreview(inPath, outPath, *previewOut, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runWithPreview(inPath, outPath, previewPath string, cfg config.Config, opts pipeline.Options) error {
	fmt.Println("Importing model...")
	m, err := gltfio.Import(inPath)
	if err != nil {
		return err
	}

	res, err := pipeline.Rig(m, opts)
	if err != nil {
		return err
	}

	fmt.Println("Exporting...")
	if err := gltfio.Export(outPath, res.Mesh, res.Skeleton, res.Weights, res.Clip); err != nil {
		return err
	}

	img := preview.Render(res.Mesh, res.Skeleton, res.Weights, preview.Options{
		Size:        cfg.PreviewSize,
		Supersample: cfg.Supersample,
		Overlay:     true,
	})
	if err := preview.SaveWebP(previewPath, img); err != nil {
		return err
	}
	fmt.Printf("Preview: %s\n", previewPath)

	fmt.Printf("Done! Animated model saved to: %s\n", outPath)
	return nil
}
