package setup

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"ringback/backend/industry"
)

// Payload is the onboarding request body for a business setup.
type Payload struct {
	BusinessName  string   `json:"business_name"`
	Industry      string   `json:"industry,omitempty"`
	ServiceAreas  []string `json:"service_areas,omitempty"`
	CustomScript  bool     `json:"custom_script"`
	MultiLocation bool     `json:"multi_location"`
}

func (p Payload) Draft() Draft {
	return Draft{
		Industry:      industry.Code(p.Industry),
		ServiceAreas:  p.ServiceAreas,
		CustomScript:  p.CustomScript,
		MultiLocation: p.MultiLocation,
	}
}

// ValidationError lists every schema violation found in a payload.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid setup payload: " + strings.Join(e.Problems, "; ")
}

var payloadSchema = gojsonschema.NewGoLoader(map[string]interface{}{
	"type":     "object",
	"required": []string{"business_name"},
	"properties": map[string]interface{}{
		"business_name": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": 200,
			"pattern":   `\S`,
		},
		"industry": map[string]interface{}{
			"type": "string",
			"enum": industry.Codes(),
		},
		"service_areas": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string", "minLength": 1},
		},
		"custom_script":  map[string]interface{}{"type": "boolean"},
		"multi_location": map[string]interface{}{"type": "boolean"},
	},
})

// ValidatePayload checks raw against the onboarding schema and decodes it.
func ValidatePayload(raw []byte) (Payload, error) {
	var p Payload
	result, err := gojsonschema.Validate(payloadSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return p, &ValidationError{Problems: []string{"body is not valid JSON"}}
	}
	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return p, &ValidationError{Problems: problems}
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decode setup payload: %w", err)
	}
	p.BusinessName = strings.TrimSpace(p.BusinessName)
	return p, nil
}
