package menu

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/five82/mealie-menu/menu.schema.json"

// JSONSchema describes the menu document accepted by Decode.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&Menu{})
	s.ID = schemaID
	s.Title = "Weekly menu"
	s.Description = "Recipes per weekday, imported into Mealie and scheduled on the meal-plan calendar."

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return out, nil
}

func (Text) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{{Type: "string"}, {Type: "number"}},
	}
}

func (Keywords) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Comma-separated keywords or a list of keywords",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}

func (Instruction) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("text", &jsonschema.Schema{Type: "string"})
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object", Properties: props, Required: []string{"text"}},
		},
	}
}
