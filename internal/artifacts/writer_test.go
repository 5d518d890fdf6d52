package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"contractocr/internal/extract"
	"contractocr/internal/ocr"
)

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	res, err := extract.ExtractFields([]any{"甲方：北京星河科技有限公司"})
	if err != nil {
		t.Fatal(err)
	}

	path, err := w.WriteSummary([]string{"a.pdf"}, res)
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if path != filepath.Join(dir, "summary.json") {
		t.Errorf("path: got %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Inputs []string           `json:"inputs"`
		Fields map[string]*string `json:"fields"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("summary not valid JSON: %v", err)
	}
	if len(got.Inputs) != 1 || got.Inputs[0] != "a.pdf" {
		t.Errorf("inputs: got %v", got.Inputs)
	}
	if got.Fields["party_a"] == nil || *got.Fields["party_a"] != "北京星河科技有限公司" {
		t.Errorf("party_a: got %v", got.Fields["party_a"])
	}
	if got.Fields["contract_amount"] != nil {
		t.Errorf("contract_amount: want null")
	}
}

func TestWritePages(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)

	pages := []ocr.PageResult{
		{PageIndex: 0, Markdown: map[string]any{"markdown_text": "# Page one"}, Raw: map[string]any{"page_index": 0}},
		{PageIndex: 1, Markdown: "Plain page"},
		{PageIndex: 2}, // no markdown, skipped
	}
	if err := w.WritePages("/scans/contract.pdf", pages); err != nil {
		t.Fatalf("WritePages: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "contract_page_000.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "# Page one" {
		t.Errorf("page 0 markdown: got %q", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "contract_page_000.json")); err != nil {
		t.Errorf("page 0 raw result missing: %v", err)
	}
	b, err = os.ReadFile(filepath.Join(dir, "contract_page_001.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "Plain page" {
		t.Errorf("page 1 markdown: got %q", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "contract_page_002.md")); !os.IsNotExist(err) {
		t.Error("empty page should not produce a markdown file")
	}
}
