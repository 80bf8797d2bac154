package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema declares the expected shape of an endpoint's 2xx response body.
// Responses are validated before decoding so a malformed payload surfaces
// as a DecodeError instead of a zero-valued struct.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "lesson-page".
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateShape validates raw JSON against the given Schema.
// A nil schema always passes.
func validateShape(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":       map[string]any{"type": "string"},
		"question": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []any{"id", "question", "options"},
}

var lessonSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":             map[string]any{"type": "integer"},
		"title":          map[string]any{"type": "string"},
		"body":           map[string]any{"type": "string"},
		"quiz":           map[string]any{"type": "array", "items": questionSchema},
		"question_count": map[string]any{"type": "integer"},
		"reward_xp":      map[string]any{"type": "integer"},
		"reward_coins":   map[string]any{"type": "integer"},
		"completed":      map[string]any{"type": "boolean"},
		"score":          map[string]any{"type": []any{"number", "null"}},
	},
	"required": []any{"id", "title", "body", "quiz", "completed"},
}

// lessonPageSchema matches GET /lessons.
var lessonPageSchema = &Schema{
	Name: "lesson-page",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items":       map[string]any{"type": "array", "items": lessonSchema},
			"page":        map[string]any{"type": "integer"},
			"page_size":   map[string]any{"type": "integer"},
			"total":       map[string]any{"type": "integer"},
			"total_pages": map[string]any{"type": "integer"},
		},
		"required": []any{"items", "page", "page_size", "total", "total_pages"},
	},
}

// verdictSchema matches POST /lessons/{id}/check-answer.
var verdictSchema = &Schema{
	Name: "verdict",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct":        map[string]any{"type": "boolean"},
			"question_id":    map[string]any{"type": "string"},
			"correct_answer": map[string]any{"type": "string"},
		},
		"required": []any{"correct", "question_id"},
	},
}

// submitResultSchema matches POST /lessons/{id}/submit.
var submitResultSchema = &Schema{
	Name: "submit-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"completed": map[string]any{"type": "boolean"},
			"score":     map[string]any{"type": "number"},
		},
		"required": []any{"score"},
	},
}

// profileSchema matches GET /me. Pet hunger and equipped_items are optional
// across API revisions; their defaults live in Pet.UnmarshalJSON.
var profileSchema = &Schema{
	Name: "profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"email":         map[string]any{"type": "string"},
			"cash_balance":  map[string]any{"type": "number"},
			"coins_balance": map[string]any{"type": "integer"},
			"xp_total":      map[string]any{"type": "integer"},
			"pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":       map[string]any{"type": "string"},
					"species":    map[string]any{"type": "string"},
					"level":      map[string]any{"type": "integer"},
					"xp_current": map[string]any{"type": "integer"},
					"stage":      map[string]any{"type": "string"},
					"hunger":     map[string]any{"type": "integer"},
				},
				"required": []any{"name", "level", "stage"},
			},
		},
		"required": []any{"email", "cash_balance", "coins_balance", "xp_total", "pet"},
	},
}

// tokenPairSchema matches the auth endpoints.
var tokenPairSchema = &Schema{
	Name: "token-pair",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"access_token":  map[string]any{"type": "string"},
			"refresh_token": map[string]any{"type": "string"},
			"token_type":    map[string]any{"type": "string"},
		},
		"required": []any{"access_token", "refresh_token"},
	},
}
