// Package export renders extraction results as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"contractocr/internal/extract"
)

// DocumentSummary is one exported row: a source document (or batch) and its
// extracted fields.
type DocumentSummary struct {
	SourcePath string
	Fields     map[extract.FieldKey]*string
}

// Service produces XLSX bytes for extraction exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// SummaryXLSX returns an XLSX workbook with one row per document summary.
// Unresolved fields render as empty cells; the last column lists their keys
// for manual review.
func (s *Service) SummaryXLSX(summaries []DocumentSummary) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Contracts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Document",
		"Party A",
		"Party B",
		"Contract Amount",
		"Sign Date",
		"Effective Date",
		"Termination Date",
		"Unresolved",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, summary := range summaries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, summary.SourcePath)
		var unresolved []string
		for i, key := range extract.FieldKeys {
			v := summary.Fields[key]
			if v == nil {
				write(i+2, "")
				unresolved = append(unresolved, string(key))
				continue
			}
			write(i+2, *v)
		}
		write(8, strings.Join(unresolved, ", "))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 48) // path
	_ = f.SetColWidth(sheet, "B", "C", 30) // parties
	_ = f.SetColWidth(sheet, "D", "D", 20) // amount
	_ = f.SetColWidth(sheet, "E", "G", 16) // dates
	_ = f.SetColWidth(sheet, "H", "H", 40) // unresolved keys

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(summaries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
