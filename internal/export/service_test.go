package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"contractocr/internal/extract"
)

func strPtr(s string) *string { return &s }

func TestSummaryXLSX(t *testing.T) {
	svc := NewService(nil)
	summaries := []DocumentSummary{
		{
			SourcePath: "/scans/contract.pdf",
			Fields: map[extract.FieldKey]*string{
				extract.PartyA:         strPtr("北京星河科技有限公司"),
				extract.PartyB:         strPtr("Blue Harbor Ltd."),
				extract.ContractAmount: strPtr("¥500,000"),
			},
		},
	}

	b, err := svc.SummaryXLSX(summaries)
	if err != nil {
		t.Fatalf("SummaryXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Contracts", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "北京星河科技有限公司" {
		t.Errorf("B2: got %q", got)
	}
	got, _ = f.GetCellValue("Contracts", "E2")
	if got != "" {
		t.Errorf("E2: got %q, want empty for unresolved sign date", got)
	}
	got, _ = f.GetCellValue("Contracts", "H2")
	if got != "sign_date, effective_date, termination_date" {
		t.Errorf("H2 unresolved column: got %q", got)
	}
	head, _ := f.GetCellValue("Contracts", "A1")
	if head != "Document" {
		t.Errorf("A1: got %q", head)
	}
}

func TestSummaryXLSXEmpty(t *testing.T) {
	svc := NewService(nil)
	b, err := svc.SummaryXLSX(nil)
	if err != nil {
		t.Fatalf("SummaryXLSX: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty workbook bytes")
	}
}
