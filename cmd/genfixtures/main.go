// Command genfixtures writes synthetic bilingual contract markdown files for
// demos and extractor testing.
package main

import (
	"flag"
	"log/slog"
	"os"

	"contractocr/internal/fixtures"
)

func main() {
	outputDir := flag.String("output-dir", "data/synthetic_contracts", "directory for generated markdown files")
	count := flag.Int("count", 4, "number of contract samples to create")
	seed := flag.Int64("seed", 2024, "random seed for deterministic output")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	samples, err := fixtures.Generate(*outputDir, *count, *seed)
	if err != nil {
		logger.Error("generate fixtures", "error", err)
		os.Exit(1)
	}
	logger.Info("synthetic contracts written", "dir", *outputDir, "count", len(samples))
}
