// Package pipeline drives documents through OCR and field extraction.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"contractocr/internal/extract"
	"contractocr/internal/ocr"
)

// Parser produces ordered page results for one document.
type Parser interface {
	Parse(ctx context.Context, path string) ([]ocr.PageResult, error)
}

// Store persists a finished extraction. Implementations may be nil-safe
// no-ops when persistence is disabled.
type Store interface {
	SaveExtraction(ctx context.Context, inputs []string, res *extract.Result) (uuid.UUID, error)
}

// ArtifactSink writes run outputs to disk.
type ArtifactSink interface {
	WriteSummary(inputs []string, res *extract.Result) (string, error)
	WritePages(source string, pages []ocr.PageResult) error
}

// Processor wires the OCR client, the extractor and the optional sinks into
// one run. Artifacts and Store may be nil.
type Processor struct {
	Logger    *slog.Logger
	Parser    Parser
	Artifacts ArtifactSink
	Store     Store
}

// RunResult is the outcome of one batch.
type RunResult struct {
	Inputs      []string
	Fields      *extract.Result
	Pages       int
	SummaryPath string
	RecordID    uuid.UUID
}

// Run parses each input in order, pools every page's markdown into one
// segment list and extracts fields across the whole batch. Pages without
// markdown are dropped before extraction.
func (p *Processor) Run(ctx context.Context, inputs []string) (*RunResult, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	var segments []any
	pageCount := 0
	for _, input := range inputs {
		pages, err := p.Parser.Parse(ctx, input)
		if err != nil {
			logger.Error("processor.parse.error", "path", input, "error", err)
			return nil, fmt.Errorf("parse %s: %w", input, err)
		}
		if p.Artifacts != nil {
			if err := p.Artifacts.WritePages(input, pages); err != nil {
				return nil, fmt.Errorf("write pages for %s: %w", input, err)
			}
		}
		for _, page := range pages {
			if page.Markdown == nil {
				continue
			}
			segments = append(segments, page.Markdown)
			pageCount++
		}
	}

	res, err := extract.ExtractFields(segments)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	out := &RunResult{Inputs: inputs, Fields: res, Pages: pageCount}
	if p.Artifacts != nil {
		path, err := p.Artifacts.WriteSummary(inputs, res)
		if err != nil {
			return nil, err
		}
		out.SummaryPath = path
	}
	if p.Store != nil {
		id, err := p.Store.SaveExtraction(ctx, inputs, res)
		if err != nil {
			logger.Error("processor.store.error", "error", err)
			return nil, fmt.Errorf("save extraction: %w", err)
		}
		out.RecordID = id
	}

	logger.Info("processor.extract.ok",
		"inputs", len(inputs),
		"pages", pageCount,
		"unresolved", len(res.Unresolved()),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
