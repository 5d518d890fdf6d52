package extract

import (
	"encoding/json"
	"strings"
)

// Result maps every FieldKey to an extracted value. Keys nothing matched stay
// unset and serialize as null; an empty string never appears. Once a field is
// set by any pass it is final.
type Result struct {
	fields  map[FieldKey]string
	sources map[FieldKey]string
}

func newResult() *Result {
	return &Result{
		fields:  make(map[FieldKey]string, len(FieldKeys)),
		sources: make(map[FieldKey]string, len(FieldKeys)),
	}
}

// set records a trimmed value for key unless one is already present.
// Whitespace-only values are discarded.
func (r *Result) set(key FieldKey, value, source string) {
	if _, done := r.fields[key]; done {
		return
	}
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return
	}
	r.fields[key] = cleaned
	r.sources[key] = strings.TrimSpace(source)
}

func (r *Result) has(key FieldKey) bool {
	_, ok := r.fields[key]
	return ok
}

// Field returns the extracted value for key and whether it was resolved.
func (r *Result) Field(key FieldKey) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Source returns the literal table line or pattern match that produced the
// value for key.
func (r *Result) Source(key FieldKey) (string, bool) {
	s, ok := r.sources[key]
	return s, ok
}

// Unresolved lists the keys no pass could fill, in stable order, so callers
// can flag them for manual review.
func (r *Result) Unresolved() []FieldKey {
	var keys []FieldKey
	for _, k := range FieldKeys {
		if _, ok := r.fields[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Fields returns a complete key-to-value map with nil for unresolved keys.
func (r *Result) Fields() map[FieldKey]*string {
	out := make(map[FieldKey]*string, len(FieldKeys))
	for _, k := range FieldKeys {
		if v, ok := r.fields[k]; ok {
			val := v
			out[k] = &val
		} else {
			out[k] = nil
		}
	}
	return out
}

// MarshalJSON renders a flat object with every field key present and null
// for unresolved fields.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}
