// Package layout compiles untrusted slide-layout source text into executable,
// sandboxed renderable units. Source is cleaned up, transpiled, and run inside
// a fresh JavaScript runtime that exposes only the host bindings; the
// conventional top-level identifiers are then collected into a Compiled
// bundle. Every failure mode of a single compilation collapses into an error
// return, never a panic, so broken layouts stay non-fatal to their siblings.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/evanw/esbuild/pkg/api"
	"go.uber.org/zap"

	"github.com/easelkit/easel/jsondata"
	"github.com/easelkit/easel/schema"
)

// Fallback values for identifying constants the source does not define.
const (
	DefaultID   = "custom-layout"
	DefaultName = "Custom Layout"
)

// DefaultTimeout bounds the wall-clock time of one execution or render pass.
const DefaultTimeout = 2 * time.Second

var (
	// ErrTranspile indicates the source could not be converted to an
	// executable form.
	ErrTranspile = errors.New("transpile failed")
	// ErrExecute indicates the executable form threw during evaluation.
	ErrExecute = errors.New("execution failed")
	// ErrNoRenderable indicates execution succeeded but no renderable unit
	// identifier was bound.
	ErrNoRenderable = errors.New("no renderable unit defined")
)

// Compiler turns one unit of layout source text into a Compiled bundle. The
// sandboxing mechanism is an implementation detail behind this interface.
type Compiler interface {
	Compile(source string) (*Compiled, error)
}

// Compiled is the self-contained result of compiling one layout source. It is
// immutable once created; Render is safe for concurrent use.
type Compiled struct {
	// ID, Name and Description identify the layout, extracted from the
	// compiled source with documented fallbacks.
	ID          string
	Name        string
	Description string

	// Shape describes the legal input data, nil when the source defines no
	// Schema.
	Shape *schema.Descriptor

	// SampleData is the default-filled data instance derived from Shape.
	// Empty when there is no shape or default derivation failed.
	SampleData map[string]any

	// ShapeSchema is the JSON-schema rendering of Shape, nil without one.
	ShapeSchema json.RawMessage

	mu      sync.Mutex
	vm      *goja.Runtime
	render  goja.Callable
	timeout time.Duration
}

// Render invokes the renderable unit with a data instance and returns the
// produced node tree. A layout that renders nothing yields (nil, nil).
func (c *Compiled) Render(data map[string]any) (node *Node, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			node, err = nil, fmt.Errorf("%w: %v", ErrExecute, r)
		}
	}()

	timer := time.AfterFunc(c.timeout, func() { c.vm.Interrupt("render timed out") })
	defer func() {
		timer.Stop()
		c.vm.ClearInterrupt()
	}()

	res, err := c.render(goja.Undefined(), c.vm.ToValue(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecute, err)
	}

	return toNode(res)
}

// RenderWithDefaults renders with the given partial data deep-merged over the
// sample data instance, so a preview with incomplete content still fills every
// defaulted field.
func (c *Compiled) RenderWithDefaults(data map[string]any) (*Node, error) {
	return c.Render(jsondata.Merge(c.SampleData, data))
}

// ==========================================================================
// Engine is the goja-backed Compiler: esbuild transpiles the dialect, a fresh
// runtime per compilation executes it with an interrupt-based time limit.

var _ Compiler = (*Engine)(nil)

type Engine struct {
	timeout time.Duration
	log     *zap.Logger
}

type EngineOption func(*Engine)

// WithTimeout overrides the wall-clock limit for execution and renders.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

func WithLogger(log *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Compile runs the full pipeline: sanitize, transpile, execute, collect. The
// returned Compiled always carries a renderable unit; any earlier failure
// returns an error wrapping one of ErrTranspile, ErrExecute, ErrNoRenderable.
func (e *Engine) Compile(source string) (c *Compiled, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("%w: panic: %v", ErrExecute, r)
		}
	}()

	code, err := transpile(sanitizeSource(source))
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	if err := bindScope(vm); err != nil {
		return nil, fmt.Errorf("binding scope: %w", err)
	}

	timer := time.AfterFunc(e.timeout, func() { vm.Interrupt("layout execution timed out") })
	_, runErr := vm.RunString(code)
	timer.Stop()
	vm.ClearInterrupt()
	if runErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecute, runErr)
	}

	unit := globalValue(vm, "dynamicSlideLayout")
	if unit == nil {
		unit = globalValue(vm, "DefaultLayout")
	}
	render, ok := goja.AssertFunction(unit)
	if !ok {
		return nil, ErrNoRenderable
	}

	c = &Compiled{
		ID:         DefaultID,
		Name:       DefaultName,
		SampleData: map[string]any{},
		vm:         vm,
		render:     render,
		timeout:    e.timeout,
	}

	if s, ok := exportString(globalValue(vm, "layoutId")); ok {
		c.ID = s
	}
	if s, ok := exportString(globalValue(vm, "layoutName")); ok {
		c.Name = s
	}
	if s, ok := exportString(globalValue(vm, "layoutDescription")); ok {
		c.Description = s
	}

	e.collectShape(vm, c)

	return c, nil
}

// collectShape picks up the Schema identifier when present. Default
// derivation is a nice-to-have: its failure degrades to empty sample data and
// never aborts the compile. Serialization is independent of derivation.
func (e *Engine) collectShape(vm *goja.Runtime, c *Compiled) {
	sv := globalValue(vm, "Schema")
	if sv == nil {
		return
	}

	desc, ok := sv.Export().(*schema.Descriptor)
	if !ok {
		e.log.Debug("Schema identifier is not a data-shape descriptor")
		return
	}
	c.Shape = desc

	sample, err := desc.DeriveDefaults()
	if err != nil {
		e.log.Debug("schema defaults unavailable", zap.Error(err))
	} else {
		c.SampleData = sample
	}

	sch, err := desc.JSONSchema()
	if err != nil {
		e.log.Debug("schema not serializable", zap.Error(err))
		return
	}
	raw, err := json.Marshal(sch)
	if err != nil {
		e.log.Debug("schema not serializable", zap.Error(err))
		return
	}
	c.ShapeSchema = raw
}

func transpile(src string) (string, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:      api.LoaderTSX,
		Target:      api.ES2017,
		JSX:         api.JSXTransform,
		JSXFactory:  "React.createElement",
		JSXFragment: "React.Fragment",
	})

	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			msgs = append(msgs, m.Text)
		}
		return "", fmt.Errorf("%w: %s", ErrTranspile, strings.Join(msgs, "; "))
	}

	return string(result.Code), nil
}

// globalValue resolves a top-level identifier whether it was declared as a
// global property or a script-level lexical binding.
func globalValue(vm *goja.Runtime, name string) goja.Value {
	v, err := vm.RunString("typeof " + name + " === 'undefined' ? undefined : " + name)
	if err != nil || v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}

	return v
}

func exportString(v goja.Value) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.Export().(string)

	return s, ok
}

func toNode(v goja.Value) (*Node, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}

	switch exp := v.Export().(type) {
	case *Node:
		return exp, nil
	case string:
		return &Node{Type: TextNode, Text: exp}, nil
	default:
		return nil, fmt.Errorf("layout rendered unsupported value of type %T", exp)
	}
}
