package schema

import (
	"fmt"

	"github.com/swaggest/jsonschema-go"
)

// JSONSchema renders the descriptor as a JSON-schema structure, the
// serializable form handed to downstream consumers such as form generators.
// Fields carrying a default are not listed as required, since valid input may
// omit them. Function-valued defaults are dynamic and cannot be serialized;
// they are left out of the schema document.
func (d *Descriptor) JSONSchema() (jsonschema.Schema, error) {
	s := jsonschema.Schema{}

	switch d.kind {
	case KindObject:
		s.WithType(jsonschema.Object.Type())

		props := make(map[string]jsonschema.SchemaOrBool, len(d.fields))
		required := make([]string, 0, len(d.fields))
		for _, f := range d.fields {
			fs, err := f.Desc.JSONSchema()
			if err != nil {
				return jsonschema.Schema{}, fmt.Errorf("property %s: %w", f.Name, err)
			}
			props[f.Name] = fs.ToSchemaOrBool()

			if f.Desc.required && !f.Desc.hasDefault() && f.Desc.kind != KindObject {
				required = append(required, f.Name)
			}
		}
		s.WithProperties(props)
		if len(required) > 0 {
			s.WithRequired(required...)
		}
	case KindString:
		s.WithType(jsonschema.String.Type())
		if d.min != nil {
			s.WithMinLength(int64(*d.min))
		}
		if d.max != nil {
			s.WithMaxLength(int64(*d.max))
		}
	case KindNumber:
		s.WithType(jsonschema.Number.Type())
		if d.min != nil {
			s.WithMinimum(*d.min)
		}
		if d.max != nil {
			s.WithMaximum(*d.max)
		}
	case KindBoolean:
		s.WithType(jsonschema.Boolean.Type())
	case KindArray:
		s.WithType(jsonschema.Array.Type())

		is, err := d.item.JSONSchema()
		if err != nil {
			return jsonschema.Schema{}, fmt.Errorf("array item: %w", err)
		}
		sob := is.ToSchemaOrBool()
		s.WithItems(jsonschema.Items{SchemaOrBool: &sob})

		if d.min != nil {
			s.WithMinItems(int64(*d.min))
		}
		if d.max != nil {
			s.WithMaxItems(int64(*d.max))
		}
	case KindEnum:
		s.WithType(jsonschema.String.Type())

		vals := make([]interface{}, len(d.values))
		for i, v := range d.values {
			vals[i] = v
		}
		s.WithEnum(vals...)
	default:
		return jsonschema.Schema{}, fmt.Errorf("unknown descriptor kind %d", d.kind)
	}

	if d.hasDef {
		s.WithDefault(d.def)
	}
	if d.desc != "" {
		s.WithDescription(d.desc)
	}

	return s, nil
}
