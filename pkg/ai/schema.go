package ai

import (
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Type is a JSON schema type
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Schema is a provider-neutral subset of JSON schema
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
	Enum        []string
}

// Object builds an object schema
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: properties, Required: required}
}

// Array builds an array schema
func Array(items *Schema, description string) *Schema {
	return &Schema{Type: TypeArray, Items: items, Description: description}
}

func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func Integer(description string) *Schema {
	return &Schema{Type: TypeInteger, Description: description}
}

func Boolean(description string) *Schema {
	return &Schema{Type: TypeBoolean, Description: description}
}

// ToGenai converts the schema for the Gemini SDK
func (s *Schema) ToGenai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Items:       s.Items.ToGenai(),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.ToGenai()
		}
	}
	return out
}

func genaiType(t Type) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeInteger:
		return genai.TypeInteger
	case TypeNumber:
		return genai.TypeNumber
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// ToJSONSchema converts the schema for OpenAI-compatible APIs
func (s *Schema) ToJSONSchema() *jsonschema.Definition {
	if s == nil {
		return nil
	}
	def := s.definition()
	return &def
}

func (s *Schema) definition() jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.DataType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	if s.Type == TypeObject {
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			def.Properties[name] = prop.definition()
		}
	}
	if s.Items != nil {
		items := s.Items.definition()
		def.Items = &items
	}
	return def
}
