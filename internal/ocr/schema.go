package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// envelopeSchema constrains the layout-parsing response before decoding. The
// markdown payload of a page may be a plain string or an object; the
// extractor handles both.
func envelopeSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"result"},
		"properties": map[string]any{
			"result": map[string]any{
				"type":     "object",
				"required": []string{"layoutParsingResults"},
				"properties": map[string]any{
					"layoutParsingResults": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"markdown": map[string]any{
									"anyOf": []any{
										map[string]any{"type": "string"},
										map[string]any{"type": "object"},
										map[string]any{"type": "null"},
									},
								},
								"prunedResult": map[string]any{"type": "object"},
							},
						},
					},
				},
			},
		},
	}
}

// validateEnvelope validates a raw response body against envelopeSchema.
func validateEnvelope(data []byte) error {
	b, err := json.Marshal(envelopeSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("envelope does not match schema: %w", err)
	}
	return nil
}
