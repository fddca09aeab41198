// Package batch rigs every GLB in a directory on a worker pool and records
// the outcomes in a manifest. Per-file pipeline output is suppressed; a
// ticker prints overall throughput instead.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"autorig/internal/config"
	"autorig/internal/gltfio"
	"autorig/internal/pipeline"
	"autorig/internal/preview"
)

// Config holds all shared resources for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Rig       config.Config
	Workers   int

	// Previews renders a WebP thumbnail of each rigged model next to its
	// output GLB.
	Previews    bool
	PreviewSize int
	Supersample int
}

// Result holds the outcome of processing one file.
type Result struct {
	File    string
	Output  string
	Preview string
	Bones   int
	Islands int
	Success bool
	Error   string
}

// Discover lists the GLB files directly under dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".glb") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run processes all files using a worker pool.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, name string) Result {
	inPath := filepath.Join(cfg.InputDir, name)
	outPath := filepath.Join(cfg.OutputDir, name)

	res := Result{File: name, Output: name}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	m, err := gltfio.Import(inPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	rigged, err := pipeline.Rig(m, pipeline.Options{Config: cfg.Rig})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Bones = len(rigged.Skeleton.Bones)
	res.Islands = len(rigged.Islands)

	if err := gltfio.Export(outPath, rigged.Mesh, rigged.Skeleton, rigged.Weights, rigged.Clip); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Previews {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		previewPath := filepath.Join(cfg.OutputDir, base+".webp")

		img := preview.Render(rigged.Mesh, rigged.Skeleton, rigged.Weights, preview.Options{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			Overlay:     true,
		})
		if err := preview.SaveWebP(previewPath, img); err != nil {
			res.Error = fmt.Sprintf("preview: %v", err)
			return res
		}
		res.Preview = base + ".webp"
	}

	res.Success = true
	return res
}
