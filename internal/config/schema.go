package config

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
)

var (
	optionalInt   = reflect.TypeOf(optional.Option[int]{})
	optionalFloat = reflect.TypeOf(optional.Option[float64]{})
)

// optionMapper describes Option fields by their element type instead of as arrays.
func optionMapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case optionalInt:
		return &jsonschema.Schema{Type: "integer"}
	case optionalFloat:
		return &jsonschema.Schema{Type: "number"}
	default:
		return nil
	}
}

// GenerateSchemaJSON returns the JSON schema of RunConfig.
func GenerateSchemaJSON() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.Mapper = optionMapper

	schema := r.Reflect(&RunConfig{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}
