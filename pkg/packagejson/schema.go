package packagejson

import (
	"github.com/invopop/jsonschema"
)

// Schema returns a JSON Schema describing package.json as this package
// models it. Unknown keys are allowed and each polymorphic attribute is a
// oneOf over its shapes.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	s := r.Reflect(&Descriptor{})
	s.Title = Filename
	s.Description = "Metadata, dependencies and scripts of a JavaScript package."
	s.AdditionalProperties = jsonschema.TrueSchema
	return s
}

func stringSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string"}
}

// recordSchema describes an object whose properties are all strings.
func recordSchema(required []string, props ...string) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
		Required:   required,
	}
	for _, p := range props {
		s.Properties.Set(p, stringSchema())
	}
	return s
}

func (Bugs) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		recordSchema(nil, "url", "email"),
		stringSchema(),
	}}
}

func (Person) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		recordSchema([]string{"name"}, "name", "email", "url"),
		stringSchema(),
	}}
}

func (Funding) JSONSchema() *jsonschema.Schema {
	record := recordSchema([]string{"url"}, "type", "url")
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		{Type: "array", Items: record},
		record,
		stringSchema(),
	}}
}

func (Bin) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		{Type: "object", AdditionalProperties: stringSchema()},
		stringSchema(),
	}}
}

func (Man) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		{Type: "array", Items: stringSchema()},
		stringSchema(),
	}}
}

func (Repository) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		recordSchema([]string{"url"}, "type", "url", "directory"),
		stringSchema(),
	}}
}
