package extract

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const chineseTable = `# 服务合同

| 项目        | 说明 |
| ----------- | ---- |
| 甲方        | 北京星河科技有限公司 |
| 乙方        | 上海明远数字有限公司 |
| 合同金额    | 人民币 120,000 元 |
| 签署日期    | 2024年05月12日 |
| 生效日期    | 2024年05月13日 |
| 到期日期    | 2025年05月12日 |
`

func TestExtractFieldsChineseTable(t *testing.T) {
	res, err := ExtractFields([]any{chineseTable})
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}

	want := map[FieldKey]string{
		PartyA:          "北京星河科技有限公司",
		PartyB:          "上海明远数字有限公司",
		ContractAmount:  "人民币 120,000 元",
		SignDate:        "2024年05月12日",
		EffectiveDate:   "2024年05月13日",
		TerminationDate: "2025年05月12日",
	}
	for key, wantVal := range want {
		got, ok := res.Field(key)
		if !ok {
			t.Errorf("%s: unresolved, want %q", key, wantVal)
			continue
		}
		if got != wantVal {
			t.Errorf("%s: got %q, want %q", key, got, wantVal)
		}
	}
	if n := len(res.Unresolved()); n != 0 {
		t.Errorf("unresolved fields: %v", res.Unresolved())
	}
}

func TestExtractFieldsEnglishText(t *testing.T) {
	md := `# Professional Services Agreement

Party A: Aurora Analytics LLC
Party B: Blue Harbor Consulting Ltd.
Total Amount: USD 250,000.00
Date of Signature: March 18, 2024
Effective Date: March 20, 2024
Expiry Date: March 19, 2025
`
	res, err := ExtractFields([]any{md})
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}

	want := map[FieldKey]string{
		PartyA:          "Aurora Analytics LLC",
		PartyB:          "Blue Harbor Consulting Ltd.",
		ContractAmount:  "USD 250,000.00",
		SignDate:        "March 18, 2024",
		EffectiveDate:   "March 20, 2024",
		TerminationDate: "March 19, 2025",
	}
	for key, wantVal := range want {
		if got, _ := res.Field(key); got != wantVal {
			t.Errorf("%s: got %q, want %q", key, got, wantVal)
		}
	}
}

func TestExtractFieldsMixedSegments(t *testing.T) {
	// Party A comes from a table in the first segment; the effective date
	// label sits at the end of one segment with its value in the next, so it
	// only resolves on the newline-joined text.
	segments := []any{
		"| 甲方 | 北京星河科技有限公司 |\n| 乙方 | 上海明远数字有限公司 |",
		"The agreement becomes Effective Date:",
		"March 20, 2024 per the signature page.",
	}
	res, err := ExtractFields(segments)
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}

	if got, _ := res.Field(PartyA); got != "北京星河科技有限公司" {
		t.Errorf("party_a: got %q", got)
	}
	if got, _ := res.Field(EffectiveDate); got != "March 20, 2024" {
		t.Errorf("effective_date: got %q", got)
	}
}

func TestTableValueBeatsPattern(t *testing.T) {
	md := "| 甲方 | 表格科技有限公司 |\n\n甲方：正文科技有限公司\n"
	res, err := ExtractFields([]any{md})
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if got, _ := res.Field(PartyA); got != "表格科技有限公司" {
		t.Errorf("party_a: got %q, want table value", got)
	}
	if src, _ := res.Source(PartyA); src != "| 甲方 | 表格科技有限公司 |" {
		t.Errorf("party_a source: got %q", src)
	}
}

func TestExtractFieldsIdempotent(t *testing.T) {
	segments := []any{chineseTable, "Party B: Blue Harbor Consulting Ltd."}
	first, err := ExtractFields(segments)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := ExtractFields(segments)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first.Fields(), second.Fields()) {
		t.Errorf("results differ between runs:\n%v\n%v", first.Fields(), second.Fields())
	}
}

func TestExtractFieldsCompleteShape(t *testing.T) {
	res, err := ExtractFields(nil)
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if got := len(res.Unresolved()); got != len(FieldKeys) {
		t.Fatalf("unresolved count: got %d, want %d", got, len(FieldKeys))
	}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat map[string]*string
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(flat) != len(FieldKeys) {
		t.Fatalf("serialized keys: got %d, want %d", len(flat), len(FieldKeys))
	}
	for _, key := range FieldKeys {
		v, present := flat[string(key)]
		if !present {
			t.Errorf("%s missing from serialized result", key)
			continue
		}
		if v != nil {
			t.Errorf("%s: got %q, want null", key, *v)
		}
	}
}

func TestMalformedTableRowIgnored(t *testing.T) {
	// One pipe, two raw cells: below the three-cell minimum, so the table
	// scan skips it. The pattern fallback still resolves the field from the
	// free-text line.
	md := "甲方 | 北京星河科技有限公司\n\n乙方：上海明远数字有限公司\n"
	res, err := ExtractFields([]any{md})
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if _, ok := res.Field(PartyA); ok {
		t.Errorf("party_a should be unset, malformed row must not qualify")
	}
	if got, _ := res.Field(PartyB); got != "上海明远数字有限公司" {
		t.Errorf("party_b: got %q", got)
	}
}

func TestUnsupportedSegmentAborts(t *testing.T) {
	for _, seg := range []any{42, 3.14, []any{"markdown"}, nil} {
		res, err := ExtractFields([]any{"Party A: Acme", seg})
		if !errors.Is(err, ErrUnsupportedSegment) {
			t.Errorf("segment %T: got err %v, want ErrUnsupportedSegment", seg, err)
		}
		if res != nil {
			t.Errorf("segment %T: got partial result %v, want nil", seg, res)
		}
	}
}

func TestWhitespaceValueStaysUnset(t *testing.T) {
	// The label is present but trails off into whitespace at the end of the
	// document; the trimmed capture is empty and must not set the field.
	res, err := ExtractFields([]any{"甲方：   "})
	if err != nil {
		t.Fatalf("ExtractFields: %v", err)
	}
	if v, ok := res.Field(PartyA); ok {
		t.Errorf("party_a: got %q, want unset for whitespace-only value", v)
	}
}

func TestFieldIndependence(t *testing.T) {
	withAll := []any{chineseTable}
	onlyParty := []any{"| 甲方        | 北京星河科技有限公司 |"}

	full, err := ExtractFields(withAll)
	if err != nil {
		t.Fatal(err)
	}
	partial, err := ExtractFields(onlyParty)
	if err != nil {
		t.Fatal(err)
	}

	fullA, _ := full.Field(PartyA)
	partialA, _ := partial.Field(PartyA)
	if fullA != partialA {
		t.Errorf("party_a depends on other fields: %q vs %q", fullA, partialA)
	}
}
