package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autorig/internal/batch"
	"autorig/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (JSON or YAML)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	previews := flag.Bool("previews", false, "Render a WebP preview next to each rigged model")
	testN := flag.Int("test", 0, "Rig only first N files for testing")

	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input-dir output-dir\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputDir := flag.Arg(0)
	outputDir := flag.Arg(1)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Workers: *workers})

	files, err := batch.Discover(inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}

	if len(files) == 0 {
		fmt.Println("No GLB files to rig.")
		os.Exit(0)
	}

	fmt.Printf("Auto-rig batch: %d files, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", outputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Rig:         cfg,
		Workers:     cfg.Workers,
		Previews:    *previews,
		PreviewSize: cfg.PreviewSize,
		Supersample: cfg.Supersample,
	}, files)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rigged: %d/%d\n", success, len(files))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.File, e.Error)
		}
	}

	manifestPath := filepath.Join(outputDir, "manifest.json")
	os.MkdirAll(outputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
