package easel

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/easelkit/easel/flightcache"
	"github.com/easelkit/easel/internal/ident"
	"github.com/easelkit/easel/layout"
)

// TemplateLayout is a compiled layout enriched with the per-layout metadata
// the service assigned to it.
type TemplateLayout struct {
	*layout.Compiled

	TemplateID string
	RawID      string
	RawName    string
	Source     string
	Fonts      []string
}

// TemplateDetail is the fully compiled form of one custom template. Layout
// order matches the order returned by the service.
type TemplateDetail struct {
	ID          string
	Name        string
	Description string
	Layouts     []TemplateLayout
	Fonts       []string
}

// Store resolves template identifiers to compiled detail or first-layout
// previews, memoizing results for the remainder of the process. Both caches
// key by the normalized identifier, so "custom-X" and "X" share one entry.
//
// Deleting through the store invalidates the affected entries; templates
// deleted elsewhere leave a stale entry until the process ends. That window
// is accepted: the cache is a pure memoization layer owning no external
// resources.
type Store struct {
	client   *Client
	compiler layout.Compiler
	details  *flightcache.Cache[*TemplateDetail]
	previews *flightcache.Cache[*layout.Compiled]
	log      *zap.Logger
}

type StoreOption func(*Store)

func WithStoreLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

func NewStore(client *Client, compiler layout.Compiler, opts ...StoreOption) *Store {
	s := &Store{
		client:   client,
		compiler: compiler,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.details = flightcache.New[*TemplateDetail]("template-detail", s.log)
	s.previews = flightcache.New[*layout.Compiled]("template-preview", s.log)

	return s
}

// Detail resolves a template identifier to its full compiled detail. Cached
// entries return synchronously; concurrent callers of the same identifier
// share one fetch-and-compile cycle. Layouts that fail to compile are logged
// and dropped; a template whose every layout is broken still resolves, as an
// empty list. Fetch failures propagate and are never cached, so the next
// call retries.
func (s *Store) Detail(ctx context.Context, id string, fallbackName string, fallbackDescription string) (*TemplateDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	key := ident.NormalizeTemplateID(id)

	return s.details.Do(key, func() (*TemplateDetail, error) {
		resp, err := s.client.GetTemplate(ctx, key)
		if err != nil {
			return nil, err
		}

		return s.assemble(key, fallbackName, fallbackDescription, resp), nil
	})
}

// FirstLayoutPreview resolves a template identifier to its first compiled
// layout, for thumbnail-style consumers that never need the rest. A template
// with no layouts, no source on the first layout, or a first layout that does
// not compile yields a cached nil: a confirmed absence is a stable fact, not
// a transient failure. Fetch failures propagate uncached, as with Detail.
func (s *Store) FirstLayoutPreview(ctx context.Context, id string) (*layout.Compiled, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	key := ident.NormalizeTemplateID(id)

	return s.previews.Do(key, func() (*layout.Compiled, error) {
		resp, err := s.client.GetTemplate(ctx, key)
		if err != nil {
			return nil, err
		}

		if len(resp.Layouts) == 0 || resp.Layouts[0].Source == "" {
			return nil, nil
		}

		compiled, err := s.compiler.Compile(resp.Layouts[0].Source)
		if err != nil {
			s.log.Warn("preview layout failed to compile",
				zap.String("template_id", key), zap.Error(err))

			return nil, nil
		}

		return compiled, nil
	})
}

// Invalidate removes the detail and preview entries for the identifier.
func (s *Store) Invalidate(id string) {
	key := ident.NormalizeTemplateID(id)
	s.details.Delete(key)
	s.previews.Delete(key)
}

// Delete removes the template on the service and invalidates its cache
// entries. The cache stays intact when the remote delete fails.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTemplate(ctx, ident.NormalizeTemplateID(id)); err != nil {
		return err
	}

	s.Invalidate(id)

	return nil
}

func (s *Store) assemble(key string, fallbackName string, fallbackDescription string, resp *TemplateDetailResponse) *TemplateDetail {
	name := resp.Template.Name
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = ident.Title(key)
	}

	description := resp.Template.Description
	if description == "" {
		description = fallbackDescription
	}

	fonts := newFontSet(resp.Fonts)

	layouts := make([]TemplateLayout, 0, len(resp.Layouts))
	for _, raw := range resp.Layouts {
		compiled, err := s.compiler.Compile(raw.Source)
		if err != nil {
			s.log.Warn("dropping layout that failed to compile",
				zap.String("template_id", key),
				zap.String("layout_id", raw.LayoutID),
				zap.Error(err))

			continue
		}

		templateID := raw.TemplateID
		if templateID == "" {
			templateID = key
		}

		layouts = append(layouts, TemplateLayout{
			Compiled:   compiled,
			TemplateID: templateID,
			RawID:      raw.LayoutID,
			RawName:    raw.LayoutName,
			Source:     raw.Source,
			Fonts:      raw.Fonts,
		})
		fonts.add(raw.Fonts)
	}

	return &TemplateDetail{
		ID:          key,
		Name:        name,
		Description: description,
		Layouts:     layouts,
		Fonts:       fonts.list(),
	}
}

// fontSet deduplicates font identifiers while preserving first-seen order.
type fontSet struct {
	seen  map[string]bool
	order []string
}

func newFontSet(initial []string) *fontSet {
	fs := &fontSet{seen: make(map[string]bool)}
	fs.add(initial)

	return fs
}

func (fs *fontSet) add(fonts []string) {
	for _, f := range fonts {
		if f == "" || fs.seen[f] {
			continue
		}
		fs.seen[f] = true
		fs.order = append(fs.order, f)
	}
}

func (fs *fontSet) list() []string {
	return fs.order
}
