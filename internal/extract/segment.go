package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSegment reports an input segment that is neither a markdown
// string nor a payload object carrying one.
var ErrUnsupportedSegment = errors.New("unsupported markdown segment type")

// NormalizeSegments flattens OCR markdown payloads into plain text strings,
// preserving segment order.
//
// Each segment is either a string or a JSON-style object whose text lives
// under "markdown_text" (preferred) or "markdown". Objects without either key
// contribute nothing. Any other type aborts the whole batch.
func NormalizeSegments(segments []any) ([]string, error) {
	texts := make([]string, 0, len(segments))
	for i, segment := range segments {
		switch v := segment.(type) {
		case string:
			texts = append(texts, v)
		case map[string]any:
			if s, ok := v["markdown_text"].(string); ok {
				texts = append(texts, s)
			} else if s, ok := v["markdown"].(string); ok {
				texts = append(texts, s)
			}
		case map[string]string:
			if s, ok := v["markdown_text"]; ok {
				texts = append(texts, s)
			} else if s, ok := v["markdown"]; ok {
				texts = append(texts, s)
			}
		default:
			return nil, fmt.Errorf("segment %d: %w: %T", i, ErrUnsupportedSegment, segment)
		}
	}
	return texts, nil
}
