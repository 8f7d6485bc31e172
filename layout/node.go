package layout

// TextNode is the Type of nodes holding bare text content.
const TextNode = "#text"

// Node is one element of the visual representation a renderable unit
// produces: a host tag, a chart component, a fragment, or text. The tree is
// the compiler's only output format; turning it into pixels is the concern of
// a downstream renderer.
type Node struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Children []*Node        `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}
