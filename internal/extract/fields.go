package extract

import "regexp"

// FieldKey identifies one of the contract attributes the extractor can
// recover. The set is closed; no other keys are ever produced.
type FieldKey string

const (
	PartyA          FieldKey = "party_a"
	PartyB          FieldKey = "party_b"
	ContractAmount  FieldKey = "contract_amount"
	SignDate        FieldKey = "sign_date"
	EffectiveDate   FieldKey = "effective_date"
	TerminationDate FieldKey = "termination_date"
)

// FieldKeys lists every key in stable order. Results always contain all of them.
var FieldKeys = []FieldKey{
	PartyA,
	PartyB,
	ContractAmount,
	SignDate,
	EffectiveDate,
	TerminationDate,
}

// fieldPatterns holds the fallback regexes per field, tried in declared
// order. Labels are bilingual; dates match 2024年05月12日 / 2024-05-12 /
// 2024/05/12 or English month-name dates like "March 18, 2024". The first
// capture group is the value.
var fieldPatterns = map[FieldKey][]*regexp.Regexp{
	PartyA: compilePatterns(
		`(?:甲方|Party\s*A)\s*[:：]\s*([^\n，。,;；]+)`,
		`Party\s*A\s*[-–]\s*([^\n]+)`,
	),
	PartyB: compilePatterns(
		`(?:乙方|Party\s*B)\s*[:：]\s*([^\n，。,;；]+)`,
		`Party\s*B\s*[-–]\s*([^\n]+)`,
	),
	ContractAmount: compilePatterns(
		`(?:合同金额|Total\s*Amount|Amount\s*Due)\s*[:：]\s*([^\n]+)`,
		`(?:金额|payment)\s*(?:为|is)\s*([^\n]+)`,
	),
	SignDate: compilePatterns(
		`(?:签署日期|Date\s*of\s*Signature)\s*[:：]\s*([0-9]{4}[年\-/][0-9]{1,2}[月\-/][0-9]{1,2}日?)`,
		`(?:Signed\s*on)\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`,
		`(?:Date\s*of\s*Signature)\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`,
	),
	EffectiveDate: compilePatterns(
		`(?:生效日期|Effective\s*Date)\s*[:：]\s*([0-9]{4}[年\-/][0-9]{1,2}[月\-/][0-9]{1,2}日?)`,
		`(?:effective\s+as\s+of)\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`,
		`(?:Effective\s*Date)\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`,
	),
	TerminationDate: compilePatterns(
		`(?:终止日期|Expiry\s*Date)\s*[:：]\s*([0-9]{4}[年\-/][0-9]{1,2}[月\-/][0-9]{1,2}日?)`,
		`(?:valid\s+until)\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`,
		`(?:Expiry\s*Date|Termination\s*Date)\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2},\s+\d{4})`,
	),
}

// tableHeaders maps bilingual row/column labels to field keys. Labels are
// stored lower-cased; the row-oriented scan matches them as substrings of a
// row's first cell, the header/data scan as whole cells.
var tableHeaders = map[FieldKey][]string{
	PartyA:          {"甲方", "party a"},
	PartyB:          {"乙方", "party b"},
	ContractAmount:  {"合同金额", "total amount", "amount"},
	SignDate:        {"签署日期", "signature date"},
	EffectiveDate:   {"生效日期", "effective date"},
	TerminationDate: {"到期日期", "有效期至", "expiry date", "termination date"},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}
