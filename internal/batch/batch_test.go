package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"autorig/internal/config"
	"autorig/internal/gltfio"
	"autorig/internal/mathutil"
	"autorig/internal/mesh"
	"autorig/internal/rig"
)

func seedGLB(t *testing.T, path string) {
	t.Helper()
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	m := &mesh.Mesh{
		Name: "seed",
		Positions: []mathutil.Vec3{
			{-0.5, 0, 0}, {0.5, 0, 0}, {0.5, 0, 2}, {-0.5, 0, 2},
		},
		Triangles: tris,
	}
	m.Edges = mesh.EdgesFromTriangles(tris)
	if err := gltfio.Export(path, m, rig.NewSkeleton(), nil, nil); err != nil {
		t.Fatalf("seed %s: %v", path, err)
	}
}

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	seedGLB(t, filepath.Join(dir, "b.glb"))
	seedGLB(t, filepath.Join(dir, "a.GLB"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.glb"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 || files[0] != "a.GLB" || files[1] != "b.glb" {
		t.Fatalf("files = %v, want [a.GLB b.glb]", files)
	}
}

func TestRunRigsDirectory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	seedGLB(t, filepath.Join(inDir, "one.glb"))
	seedGLB(t, filepath.Join(inDir, "two.glb"))

	var rigCfg config.Config
	rigCfg.Resolve(config.Flags{})

	results := Run(Config{
		InputDir:  inDir,
		OutputDir: outDir,
		Rig:       rigCfg,
		Workers:   2,
	}, []string{"one.glb", "two.glb"})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Errorf("%s failed: %s", r.File, r.Error)
			continue
		}
		if r.Bones == 0 {
			t.Errorf("%s: no bones reported", r.File)
		}
		out := filepath.Join(outDir, r.Output)
		if _, err := gltfio.Import(out); err != nil {
			t.Errorf("%s: rigged output unreadable: %v", r.File, err)
		}
	}
}

func TestRunReportsBadFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(inDir, "broken.glb"), []byte("not a glb"), 0644); err != nil {
		t.Fatal(err)
	}

	results := Run(Config{InputDir: inDir, OutputDir: outDir, Workers: 1}, []string{"broken.glb"})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Success || results[0].Error == "" {
		t.Fatalf("expected failure result, got %+v", results[0])
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	results := []Result{
		{File: "a.glb", Output: "a.glb", Bones: 15, Islands: 1, Success: true},
		{File: "b.glb", Error: "no mesh found in scene"},
	}

	if err := WriteManifest(path, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("manifest not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Output != "a.glb" || entries[0].Bones != 15 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Output != "" || entries[1].Error == "" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}
