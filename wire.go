package easel

// Wire contract of the remote template service. The service owns these
// shapes; the client treats them as read-only and vets every response body
// against the embedded schemas before unmarshalling.

// TemplateMeta is the template header returned in listing responses.
type TemplateMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TemplateSummary is one entry of the template listing.
type TemplateSummary struct {
	Template TemplateMeta `json:"template"`
}

// TemplateDetailMeta is the template header returned in detail responses.
type TemplateDetailMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RawLayout is one layout definition exactly as the service stores it: the
// untrusted source text plus server-assigned identifiers. The layoutId and
// layoutName here are distinct from the identifiers embedded in the source
// itself, which surface on the compiled layout.
type RawLayout struct {
	TemplateID string   `json:"templateId"`
	LayoutID   string   `json:"layoutId"`
	LayoutName string   `json:"layoutName"`
	Source     string   `json:"sourceText"`
	Fonts      []string `json:"fonts,omitempty"`
}

// TemplateDetailResponse is the full detail payload for one template.
type TemplateDetailResponse struct {
	Template TemplateDetailMeta `json:"template"`
	Layouts  []RawLayout        `json:"layouts"`
	Fonts    []string           `json:"fonts,omitempty"`
}

const templateSummariesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["template"],
		"properties": {
			"template": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"}
				}
			}
		}
	}
}`

const templateDetailSchema = `{
	"type": "object",
	"required": ["template", "layouts"],
	"properties": {
		"template": {
			"type": "object",
			"required": ["id"],
			"properties": {
				"id": {"type": "string"},
				"name": {"type": "string"},
				"description": {"type": "string"}
			}
		},
		"layouts": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["layoutId"],
				"properties": {
					"templateId": {"type": "string"},
					"layoutId": {"type": "string"},
					"layoutName": {"type": "string"},
					"sourceText": {"type": "string"},
					"fonts": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"fonts": {"type": "array", "items": {"type": "string"}}
	}
}`
