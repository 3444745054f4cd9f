package surveyapi

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionsSchemaURL = "schema://survey-questions.json"

// questionsSchema describes the GET payload: an array of
// {questions, answers, selectedAnswer}. selectedAnswer may be omitted or null.
var questionsSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []any{"questions", "answers"},
		"properties": map[string]any{
			"questions": map[string]any{"type": "string"},
			"answers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"selectedAnswer": map[string]any{"type": []any{"string", "null"}},
		},
	},
}

var compiledQuestionsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(questionsSchemaURL, questionsSchema); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(questionsSchemaURL)
})

// validatePayload checks raw JSON against questionsSchema.
func validatePayload(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidPayloadError{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledQuestionsSchema()
	if err != nil {
		return &InvalidPayloadError{Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := schema.Validate(parsed); err != nil {
		return &InvalidPayloadError{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
