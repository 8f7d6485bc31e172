package schema

import (
	"fmt"

	"github.com/dop251/goja"
)

// Bind installs the z schema builder into the runtime, the host-side
// implementation of the schema library layout source is written against:
//
//	const Schema = z.object({ title: z.string().default('Untitled') });
//
// The runtime's field name mapper is set so descriptor methods surface under
// their conventional JavaScript names (.default, .optional, .min, ...).
func Bind(vm *goja.Runtime) error {
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())

	z := vm.NewObject()

	if err := z.Set("object", func(shape *goja.Object) (*Descriptor, error) {
		d := &Descriptor{kind: KindObject, required: true}
		for _, key := range shape.Keys() {
			field, ok := shape.Get(key).Export().(*Descriptor)
			if !ok {
				return nil, fmt.Errorf("z.object: property %q is not a schema", key)
			}
			d.fields = append(d.fields, Field{Name: key, Desc: field})
		}
		return d, nil
	}); err != nil {
		return err
	}

	if err := z.Set("string", func() *Descriptor {
		return &Descriptor{kind: KindString, required: true}
	}); err != nil {
		return err
	}

	if err := z.Set("number", func() *Descriptor {
		return &Descriptor{kind: KindNumber, required: true}
	}); err != nil {
		return err
	}

	if err := z.Set("boolean", func() *Descriptor {
		return &Descriptor{kind: KindBoolean, required: true}
	}); err != nil {
		return err
	}

	if err := z.Set("array", func(item *Descriptor) (*Descriptor, error) {
		if item == nil {
			return nil, fmt.Errorf("z.array: item is not a schema")
		}
		return &Descriptor{kind: KindArray, item: item, required: true}, nil
	}); err != nil {
		return err
	}

	if err := z.Set("enum", func(values []string) (*Descriptor, error) {
		if len(values) == 0 {
			return nil, fmt.Errorf("z.enum: at least one value is required")
		}
		return &Descriptor{kind: KindEnum, values: values, required: true}, nil
	}); err != nil {
		return err
	}

	return vm.Set("z", z)
}
