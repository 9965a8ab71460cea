package evalapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// evaluationRequestSchema mirrors the backend's EvaluationRequest model.
var evaluationRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type":      "string",
			"minLength": 1,
			"pattern":   `\S`,
		},
		"model_ids": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "integer", "minimum": 1},
		},
		"test_case_ids": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer", "minimum": 1},
		},
		"categories": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
	},
	"required": []string{"name", "model_ids"},
}

// ValidateEvaluationRequest checks req against the request schema before it is sent.
func ValidateEvaluationRequest(req EvaluationRequest) error {
	schemaLoader := gojsonschema.NewGoLoader(evaluationRequestSchema)
	documentLoader := gojsonschema.NewGoLoader(req)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("invalid evaluation request: %s", strings.Join(errs, ", "))
}
