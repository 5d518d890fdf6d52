// Command contractocr runs OCR and field extraction over contract documents
// and prints the extracted fields as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"contractocr/internal/artifacts"
	"contractocr/internal/common"
	"contractocr/internal/export"
	"contractocr/internal/ingest"
	"contractocr/internal/ocr"
	"contractocr/internal/pipeline"
)

type inputList []string

func (l *inputList) String() string     { return strings.Join(*l, ",") }
func (l *inputList) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	var inputs inputList
	flag.Var(&inputs, "input", "document file or directory (repeatable)")
	outputDir := flag.String("output-dir", cfg.Output.ArtifactDir, "directory for page markdown, raw results and summary.json")
	serverURL := flag.String("server-url", cfg.OCR.BaseURL, "layout-parsing service base URL")
	timeout := flag.Duration("timeout", cfg.OCR.Timeout, "per-document OCR timeout")
	orientation := flag.Bool("orientation-classify", cfg.OCR.UseOrientationClassify, "enable document orientation classification")
	unwarping := flag.Bool("doc-unwarping", cfg.OCR.UseDocUnwarping, "enable document unwarping")
	layout := flag.Bool("layout-detection", cfg.OCR.UseLayoutDetection, "enable layout detection")
	charts := flag.Bool("chart-recognition", cfg.OCR.UseChartRecognition, "enable chart recognition")
	maxConcurrency := flag.Int("max-concurrency", cfg.OCR.MaxConcurrency, "OCR service concurrency hint (0 = service default)")
	xlsxPath := flag.String("xlsx", "", "also write an XLSX summary to this path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(inputs) == 0 {
		logger.Error("usage", "cmd", "contractocr -input <file-or-dir> [-input ...]")
		os.Exit(2)
	}

	paths, stats, err := ingest.Resolve(inputs)
	if err != nil {
		logger.Error("resolve inputs", "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Error("no supported documents found", "scanned", stats.Scanned)
		os.Exit(1)
	}
	logger.Info("resolved inputs", "scanned", stats.Scanned, "matched", stats.Matched)

	client := ocr.NewClient(ocr.Config{
		BaseURL:                *serverURL,
		Timeout:                *timeout,
		UseOrientationClassify: *orientation,
		UseDocUnwarping:        *unwarping,
		UseLayoutDetection:     *layout,
		UseChartRecognition:    *charts,
		FormatBlockContent:     cfg.OCR.FormatBlockContent,
		MaxConcurrency:         *maxConcurrency,
	}, logger)

	proc := &pipeline.Processor{Logger: logger, Parser: client}
	if *outputDir != "" {
		proc.Artifacts = artifacts.NewWriter(*outputDir, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(paths))*(*timeout))
	defer cancel()

	res, err := proc.Run(ctx, paths)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	if *xlsxPath != "" {
		svc := export.NewService(logger)
		b, err := svc.SummaryXLSX([]export.DocumentSummary{{
			SourcePath: strings.Join(paths, ";"),
			Fields:     res.Fields.Fields(),
		}})
		if err != nil {
			logger.Error("xlsx export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, b, 0o644); err != nil {
			logger.Error("write xlsx", "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx written", "path", *xlsxPath)
	}

	out, err := json.MarshalIndent(res.Fields, "", "  ")
	if err != nil {
		logger.Error("marshal fields", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if unresolved := res.Fields.Unresolved(); len(unresolved) > 0 {
		keys := make([]string, 0, len(unresolved))
		for _, k := range unresolved {
			keys = append(keys, string(k))
		}
		logger.Warn("fields need manual review", "keys", strings.Join(keys, ", "))
	}
}
