// Package extract recovers key contract facts (parties, amount, dates) from
// the Markdown a document-understanding engine produces. It is deliberately
// lightweight: a table-aware scan over pipe-rows first, then ordered
// bilingual regex fallbacks over the joined text. No cross-call state.
package extract

import "strings"

// ExtractFields runs the two-phase search over the given markdown segments.
//
// Tables tend to be the most structured part of an OCR reconstruction, so
// they are scanned first, block by block in input order. Pattern fallback
// then covers whatever the tables left unset, operating on all blocks joined
// with a newline so a label and its value may span segments. A field absent
// from the document stays unset in the result; that is the expected common
// case, not an error.
func ExtractFields(segments []any) (*Result, error) {
	texts, err := NormalizeSegments(segments)
	if err != nil {
		return nil, err
	}

	res := newResult()
	for _, text := range texts {
		scanTables(text, res)
	}

	combined := strings.Join(texts, "\n")
	for _, key := range FieldKeys {
		if res.has(key) {
			continue
		}
		searchPatterns(combined, key, res)
	}
	return res, nil
}
