// Package storage holds the template and color scheme tables.
//
// SYSTEM ARCHITECTURE ROLE:
// This package is the data layer of ascii-frog. It builds the two read-only stores
// once at startup (compiled-in tables plus an optional YAML catalog) and hands them
// to the renderer and service by pointer.
//
// KEY RESPONSIBILITIES:
// - Exact, case-sensitive lookup of templates and color schemes by id
// - Listing in insertion order so every interface shows the same sequence
// - Uniform random selection with an injectable random source
// - Rejecting invalid or duplicate entries before anything is served
//
// INTEGRATION POINTS:
// - internal/models: Template, ColorScheme and their summaries
// - internal/errors: NotFoundError for unknown ids, validation errors for bad tables
// - internal/renderer: resolves both stores on every render
// - internal/config: catalog.path selects the optional YAML catalog
//
// USAGE PATTERNS:
//
//	lib, err := storage.NewLibrary(cfg.Catalog.Path, logger)
//	tmpl, err := lib.Templates.Get("classic")
//
// Stores are never mutated after construction and are safe for concurrent use.
package storage

import (
	"math/rand/v2"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
)

// RandomFunc returns a pseudo-random int in [0, n). It must be safe for concurrent use.
type RandomFunc func(n int) int

// Option configures a store
type Option func(*storeOptions)

type storeOptions struct {
	random RandomFunc
}

// WithRandom replaces the random source used by PickRandom
func WithRandom(fn RandomFunc) Option {
	return func(o *storeOptions) {
		if fn != nil {
			o.random = fn
		}
	}
}

func applyOptions(opts []Option) storeOptions {
	o := storeOptions{random: rand.IntN}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TemplateStore is an ordered, immutable set of templates
type TemplateStore struct {
	templates []*models.Template
	index     map[string]int
	random    RandomFunc
}

// NewTemplateStore validates templates and builds a store preserving their order
func NewTemplateStore(templates []models.Template, opts ...Option) (*TemplateStore, error) {
	if len(templates) == 0 {
		return nil, errors.ValidationError("at least one template is required")
	}

	o := applyOptions(opts)
	s := &TemplateStore{
		templates: make([]*models.Template, 0, len(templates)),
		index:     make(map[string]int, len(templates)),
		random:    o.random,
	}

	for i := range templates {
		t := templates[i]
		if err := t.Validate(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeValidation, "Invalid template").
				WithContext("id", t.ID)
		}
		if _, exists := s.index[t.ID]; exists {
			return nil, errors.AlreadyExistsError("template", t.ID)
		}
		if t.Source == "" {
			t.Source = SourceBuiltin
		}
		s.index[t.ID] = len(s.templates)
		s.templates = append(s.templates, &t)
	}

	return s, nil
}

// Get returns the template with exactly this id. The result must not be modified.
func (s *TemplateStore) Get(id string) (*models.Template, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, errors.NotFoundError("template", id)
	}
	return s.templates[i], nil
}

// Has reports whether id names a stored template
func (s *TemplateStore) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// List returns every template summary in insertion order
func (s *TemplateStore) List() []models.TemplateSummary {
	summaries := make([]models.TemplateSummary, 0, len(s.templates))
	for _, t := range s.templates {
		summaries = append(summaries, t.Summary())
	}
	return summaries
}

// All returns every template in insertion order
func (s *TemplateStore) All() []*models.Template {
	out := make([]*models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// IDs returns every template id in insertion order
func (s *TemplateStore) IDs() []string {
	ids := make([]string, 0, len(s.templates))
	for _, t := range s.templates {
		ids = append(ids, t.ID)
	}
	return ids
}

// Len returns the number of templates
func (s *TemplateStore) Len() int {
	return len(s.templates)
}

// PickRandom selects a template uniformly at random
func (s *TemplateStore) PickRandom() *models.Template {
	return s.templates[s.random(len(s.templates))]
}

// SchemeStore is an ordered, immutable set of color schemes
type SchemeStore struct {
	schemes []*models.ColorScheme
	index   map[string]int
	random  RandomFunc
}

// NewSchemeStore validates schemes and builds a store preserving their order
func NewSchemeStore(schemes []models.ColorScheme, opts ...Option) (*SchemeStore, error) {
	if len(schemes) == 0 {
		return nil, errors.ValidationError("at least one color scheme is required")
	}

	o := applyOptions(opts)
	s := &SchemeStore{
		schemes: make([]*models.ColorScheme, 0, len(schemes)),
		index:   make(map[string]int, len(schemes)),
		random:  o.random,
	}

	for i := range schemes {
		c := schemes[i]
		if err := c.Validate(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeValidation, "Invalid color scheme").
				WithContext("id", c.ID)
		}
		if _, exists := s.index[c.ID]; exists {
			return nil, errors.AlreadyExistsError("color scheme", c.ID)
		}
		if c.Source == "" {
			c.Source = SourceBuiltin
		}
		s.index[c.ID] = len(s.schemes)
		s.schemes = append(s.schemes, &c)
	}

	return s, nil
}

// Get returns the color scheme with exactly this id. The result must not be modified.
func (s *SchemeStore) Get(id string) (*models.ColorScheme, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, errors.NotFoundError("color scheme", id)
	}
	return s.schemes[i], nil
}

// Has reports whether id names a stored scheme
func (s *SchemeStore) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// List returns every scheme summary in insertion order
func (s *SchemeStore) List() []models.SchemeSummary {
	summaries := make([]models.SchemeSummary, 0, len(s.schemes))
	for _, c := range s.schemes {
		summaries = append(summaries, c.Summary())
	}
	return summaries
}

// All returns every scheme in insertion order
func (s *SchemeStore) All() []*models.ColorScheme {
	out := make([]*models.ColorScheme, len(s.schemes))
	copy(out, s.schemes)
	return out
}

// IDs returns every scheme id in insertion order
func (s *SchemeStore) IDs() []string {
	ids := make([]string, 0, len(s.schemes))
	for _, c := range s.schemes {
		ids = append(ids, c.ID)
	}
	return ids
}

// Len returns the number of schemes
func (s *SchemeStore) Len() int {
	return len(s.schemes)
}

// PickRandom selects a color scheme uniformly at random
func (s *SchemeStore) PickRandom() *models.ColorScheme {
	return s.schemes[s.random(len(s.schemes))]
}
