// Package easel is the client-side core of a presentation-generation
// product. It resolves custom-template identifiers against the remote
// template service, compiles each template's untrusted layout source into
// sandboxed renderable units, and memoizes the results for the remainder of
// the process with single-flight deduplication across concurrent callers.
package easel

import (
	"github.com/easelkit/easel/layout"
)

// New wires a ready-to-use Store against the template service at baseURL,
// with the default layout engine. Callers needing a custom compiler or cache
// behavior compose NewClient and NewStore directly.
func New(baseURL string, opts ...ClientOption) *Store {
	client := NewClient(baseURL, opts...)

	return NewStore(
		client,
		layout.NewEngine(layout.WithLogger(client.log)),
		WithStoreLogger(client.log),
	)
}
