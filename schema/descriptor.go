// Package schema implements the data-shape descriptor for slide layouts: a
// validator object describing the legal input data of a layout (fields, types,
// constraints, defaults). Descriptors are built by untrusted layout source
// through the z binding (see Bind) and consumed host-side for default
// derivation, serialization and instance validation.
package schema

import (
	"fmt"

	"github.com/dop251/goja"
)

type Kind int

const (
	KindObject Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindEnum
)

// Field is one named property of an object descriptor. Order matches the
// declaration order in the layout source.
type Field struct {
	Name string
	Desc *Descriptor
}

// Descriptor describes the legal shape of one value. A layout's Schema is
// always an object descriptor at the top level.
//
// Descriptors built through the z binding hold references into the goja
// runtime that created them (function-valued defaults); deriving defaults is
// therefore not safe concurrently with a render on the same compiled layout.
type Descriptor struct {
	kind     Kind
	fields   []Field
	item     *Descriptor
	values   []string
	required bool
	def      any
	defFn    func() (any, error)
	hasDef   bool
	min      *float64
	max      *float64
	desc     string
}

// Default sets the default value for the field. A function argument is kept
// as a thunk and evaluated at derivation time, matching the semantics layout
// authors expect from their schema library.
func (d *Descriptor) Default(v goja.Value) *Descriptor {
	if fn, ok := goja.AssertFunction(v); ok {
		d.defFn = func() (any, error) {
			res, err := fn(goja.Undefined())
			if err != nil {
				return nil, err
			}
			return res.Export(), nil
		}
		return d
	}

	d.def = v.Export()
	d.hasDef = true
	return d
}

// Optional marks the field as omittable from input data.
func (d *Descriptor) Optional() *Descriptor {
	d.required = false
	return d
}

func (d *Descriptor) Min(n float64) *Descriptor {
	d.min = &n
	return d
}

func (d *Descriptor) Max(n float64) *Descriptor {
	d.max = &n
	return d
}

func (d *Descriptor) Describe(s string) *Descriptor {
	d.desc = s
	return d
}

// DeriveDefaults produces the default-filled data instance for an object
// descriptor, the value obtained by parsing empty input. A required field
// with no default (and no derivable nested object) is an error, as is a
// default thunk that throws.
func (d *Descriptor) DeriveDefaults() (map[string]any, error) {
	if d.kind != KindObject {
		return nil, fmt.Errorf("defaults require an object descriptor, got kind %d", d.kind)
	}

	out := make(map[string]any, len(d.fields))
	for _, f := range d.fields {
		v, present, err := f.Desc.defaultValue()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		if present {
			out[f.Name] = v
		}
	}

	return out, nil
}

func (d *Descriptor) defaultValue() (any, bool, error) {
	if d.defFn != nil {
		v, err := d.defFn()
		if err != nil {
			return nil, false, fmt.Errorf("default thunk: %w", err)
		}
		return v, true, nil
	}
	if d.hasDef {
		return d.def, true, nil
	}
	if d.kind == KindObject {
		v, err := d.DeriveDefaults()
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	if !d.required {
		return nil, false, nil
	}

	return nil, false, fmt.Errorf("required field has no default")
}

func (d *Descriptor) hasDefault() bool {
	return d.hasDef || d.defFn != nil
}
