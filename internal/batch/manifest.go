package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry records one rigged model in the output manifest.
type ManifestEntry struct {
	File    string `json:"file"`
	Output  string `json:"output,omitempty"`
	Preview string `json:"preview,omitempty"`
	Bones   int    `json:"bones,omitempty"`
	Islands int    `json:"islands,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			File:    r.File,
			Preview: r.Preview,
			Bones:   r.Bones,
			Islands: r.Islands,
			Error:   r.Error,
		}
		if r.Success {
			e.Output = r.Output
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
