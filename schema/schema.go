// Package schema derives tool parameter schemas from Go argument structs.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/toolbridge"
	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with the defaults used for tool parameters.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator. Fields are required only when tagged
// `jsonschema:"required"`.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the parameter schema for v as JSON. The $schema and $id
// keywords are dropped since the model API rejects them.
func (g *Generator) Reflect(v any) (json.RawMessage, error) {
	s := g.reflector.Reflect(v)
	s.Version = ""
	s.ID = ""
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return data, nil
}

// Parameters reflects a zero T into a parameter schema.
func Parameters[T any]() (json.RawMessage, error) {
	var zero T
	return NewGenerator().Reflect(&zero)
}

// Declare builds a Declaration whose parameters are reflected from T.
// It panics if T cannot be reflected, which only happens for unsupported
// field types and is a programming error.
func Declare[T any](name, description string) toolbridge.Declaration {
	params, err := Parameters[T]()
	if err != nil {
		panic(err)
	}
	return toolbridge.Declaration{
		Name:        name,
		Description: description,
		Parameters:  params,
	}
}
