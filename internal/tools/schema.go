package tools

import "github.com/google/jsonschema-go/jsonschema"

// objectSchema builds the input schema for a tool from two flat
// name->type maps. Types use Go spellings ("string", "int", "bool",
// "[]string", "map[string]any") mirroring the handler's expectations.
func objectSchema(required, optional map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(required)+len(optional))
	requiredNames := make([]string, 0, len(required))

	for name, goType := range required {
		properties[name] = propertySchema(goType)
		requiredNames = append(requiredNames, name)
	}
	for name, goType := range optional {
		properties[name] = propertySchema(goType)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   requiredNames,
	}
}

func propertySchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "float", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	case "any", "object", "map[string]any":
		return &jsonschema.Schema{Type: "object"}
	default:
		if len(goType) > 2 && goType[:2] == "[]" {
			return &jsonschema.Schema{
				Type:  "array",
				Items: propertySchema(goType[2:]),
			}
		}
		return &jsonschema.Schema{Type: "string"}
	}
}
