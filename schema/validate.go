package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ErrBodyEmpty occurs when the payload to validate was empty.
var ErrBodyEmpty = errors.New("body empty")

// Validate checks a data instance against the descriptor's serialized schema.
// A nil error means the instance is a legal input for the layout.
func (d *Descriptor) Validate(data map[string]any) error {
	sch, err := d.JSONSchema()
	if err != nil {
		return fmt.Errorf("serializing schema: %w", err)
	}

	doc, err := json.Marshal(sch)
	if err != nil {
		return fmt.Errorf("marshalling schema: %w", err)
	}

	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(doc), gojsonschema.NewGoLoader(data))
	if err != nil {
		return fmt.Errorf("json schema validate: %w", err)
	}

	if !res.Valid() {
		return toValidationError(res)
	}

	return nil
}

// ValidateJSON validates a raw JSON document against a raw JSON schema. It is
// used at the collaborator boundary to vet wire payloads before unmarshalling.
func ValidateJSON(schemaDoc []byte, body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("validate: %w", ErrBodyEmpty)
	}

	doc := gojsonschema.NewBytesLoader(schemaDoc)
	sch, err := gojsonschema.NewSchema(doc)
	if err != nil {
		return fmt.Errorf("gojsonschema.NewSchema: %w", err)
	}

	res, err := sch.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("json schema validate: %w", err)
	}

	if !res.Valid() {
		return toValidationError(res)
	}

	return nil
}
