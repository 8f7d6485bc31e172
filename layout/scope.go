package layout

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/easelkit/easel/schema"
)

// chartComponents are the charting sub-components a layout may reference,
// both as bare identifiers and under the Charts namespace. Each renders as a
// typed node; the actual chart drawing lives downstream.
var chartComponents = []string{
	"ResponsiveContainer",
	"BarChart", "LineChart", "PieChart", "AreaChart", "ScatterChart", "RadarChart", "ComposedChart",
	"XAxis", "YAxis", "ZAxis", "CartesianGrid",
	"PolarGrid", "PolarAngleAxis", "PolarRadiusAxis",
	"Bar", "Line", "Pie", "Area", "Scatter", "Radar", "Cell",
	"Legend", "Tooltip",
	"ReferenceLine", "ReferenceArea", "Brush", "Label", "LabelList",
}

// bindScope installs exactly the bindings layout source may assume exist: the
// React host object with its render primitives (also destructured as bare
// names), the z schema builder, and the charting components. Anything else is
// undefined and raises at execution time.
func bindScope(vm *goja.Runtime) error {
	if err := schema.Bind(vm); err != nil {
		return fmt.Errorf("binding schema library: %w", err)
	}

	react, err := newReactBinding(vm)
	if err != nil {
		return err
	}
	if err := vm.Set("React", react); err != nil {
		return err
	}

	for _, name := range []string{"useState", "useEffect", "useMemo", "useCallback"} {
		if err := vm.Set(name, react.Get(name)); err != nil {
			return err
		}
	}

	charts := vm.NewObject()
	for _, name := range chartComponents {
		if err := charts.Set(name, name); err != nil {
			return err
		}
		if err := vm.Set(name, name); err != nil {
			return err
		}
	}
	if err := vm.Set("Charts", charts); err != nil {
		return err
	}

	return nil
}

func newReactBinding(vm *goja.Runtime) (*goja.Object, error) {
	react := vm.NewObject()

	bindings := map[string]any{
		"createElement": createElement(vm),
		"Fragment":      "Fragment",

		// Hooks evaluate against a single render pass: state sticks to its
		// initial value, effects never fire, memoization is a direct call.
		"useState": func(call goja.FunctionCall) goja.Value {
			setter := vm.ToValue(func(goja.FunctionCall) goja.Value { return goja.Undefined() })
			return vm.NewArray(call.Argument(0), setter)
		},
		"useEffect": func(call goja.FunctionCall) goja.Value {
			return goja.Undefined()
		},
		"useMemo": func(call goja.FunctionCall) goja.Value {
			fn, ok := goja.AssertFunction(call.Argument(0))
			if !ok {
				return goja.Undefined()
			}
			res, err := fn(goja.Undefined())
			if err != nil {
				panic(vm.NewGoError(err))
			}
			return res
		},
		"useCallback": func(call goja.FunctionCall) goja.Value {
			return call.Argument(0)
		},
	}

	for name, v := range bindings {
		if err := react.Set(name, v); err != nil {
			return nil, err
		}
	}

	return react, nil
}

func createElement(vm *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		typ := call.Argument(0)
		props := exportProps(call.Argument(1))

		var rest []goja.Value
		if len(call.Arguments) > 2 {
			rest = call.Arguments[2:]
		}
		children := flattenChildren(rest)

		// Functional components resolve immediately: the tree is a render
		// snapshot, there is no reconciliation pass.
		if fn, ok := goja.AssertFunction(typ); ok {
			merged := make(map[string]any, len(props)+1)
			for k, v := range props {
				merged[k] = v
			}
			if len(children) > 0 {
				merged["children"] = children
			}
			res, err := fn(goja.Undefined(), vm.ToValue(merged))
			if err != nil {
				panic(vm.NewGoError(err))
			}
			return res
		}

		name := typ.String()
		if s, ok := typ.Export().(string); ok {
			name = s
		}

		return vm.ToValue(&Node{Type: name, Props: props, Children: children})
	}
}

func exportProps(v goja.Value) map[string]any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	m, ok := v.Export().(map[string]any)
	if !ok {
		return nil
	}

	return m
}

func flattenChildren(args []goja.Value) []*Node {
	var out []*Node
	for _, a := range args {
		if a == nil || goja.IsUndefined(a) || goja.IsNull(a) {
			continue
		}
		out = appendChild(out, a.Export())
	}

	return out
}

func appendChild(out []*Node, v any) []*Node {
	switch v := v.(type) {
	case nil:
		return out
	case *Node:
		return append(out, v)
	case []*Node:
		return append(out, v...)
	case []any:
		for _, item := range v {
			out = appendChild(out, item)
		}
		return out
	case bool:
		// conditional rendering: `cond && <El/>` leaves a bare boolean behind
		return out
	case string:
		if v == "" {
			return out
		}
		return append(out, &Node{Type: TextNode, Text: v})
	default:
		return append(out, &Node{Type: TextNode, Text: fmt.Sprint(v)})
	}
}
