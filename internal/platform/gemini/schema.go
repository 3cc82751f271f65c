package gemini

import (
	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"
)

// toSchema converts the provider-neutral schema into a Gemini response schema.
func toSchema(d jsonschema.Definition) *genai.Schema {
	s := &genai.Schema{
		Description: d.Description,
		Required:    d.Required,
	}

	switch d.Type {
	case jsonschema.Object:
		s.Type = genai.TypeObject
	case jsonschema.Array:
		s.Type = genai.TypeArray
	case jsonschema.String:
		s.Type = genai.TypeString
	case jsonschema.Integer:
		s.Type = genai.TypeInteger
	case jsonschema.Number:
		s.Type = genai.TypeNumber
	case jsonschema.Boolean:
		s.Type = genai.TypeBoolean
	}

	if len(d.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(d.Properties))
		for name, prop := range d.Properties {
			s.Properties[name] = toSchema(prop)
		}
	}
	if d.Items != nil {
		s.Items = toSchema(*d.Items)
	}
	return s
}
