// Package ingest normalizes user-provided input arguments into a flat list
// of document paths for the OCR pipeline.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"contractocr/constants"
)

// Stats summarizes one resolve call.
type Stats struct {
	Scanned uint32
	Matched uint32
}

// Resolve expands each input to concrete file paths, preserving input order.
// A directory contributes its immediate children with a supported scan
// extension, sorted by name; an explicit file path is taken as-is. An
// unreadable or missing path is fatal so bad batches fail before any OCR
// work starts.
func Resolve(inputs []string) ([]string, Stats, error) {
	var out []string
	var stats Stats
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, stats, fmt.Errorf("resolve input %s: %w", input, err)
		}
		if !info.IsDir() {
			stats.Scanned++
			stats.Matched++
			out = append(out, input)
			continue
		}
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, stats, fmt.Errorf("read dir %s: %w", input, err)
		}
		for _, entry := range entries {
			stats.Scanned++
			if entry.IsDir() {
				continue
			}
			if !constants.IsSupportedExt(filepath.Ext(entry.Name())) {
				continue
			}
			stats.Matched++
			out = append(out, filepath.Join(input, entry.Name()))
		}
	}
	return out, stats, nil
}
