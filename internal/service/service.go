package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/renderer"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"
)

// ServiceName identifies this process in health reports
const ServiceName = "ascii-frog-generator"

// Options configures a Service
type Options struct {
	Version  string
	Terminal models.TerminalConfig
	Logger   zerolog.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// Service provides the frog operations shared by the API, CLI and terminal widget
type Service struct {
	library  *storage.Library
	renderer *renderer.Renderer
	logger   zerolog.Logger
	version  string
	terminal models.TerminalConfig
	now      func() time.Time
	started  time.Time
}

// NewService creates a new service instance
func NewService(lib *storage.Library, r *renderer.Renderer, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	return &Service{
		library:  lib,
		renderer: r,
		logger:   opts.Logger,
		version:  version,
		terminal: opts.Terminal,
		now:      now,
		started:  now(),
	}
}

// RenderByID renders the template id, colorized with schemeID when it is not empty
func (s *Service) RenderByID(id, schemeID string, format models.Format) (*models.RenderedOutput, error) {
	out, err := s.renderer.Render(id, schemeID, format)
	if err != nil {
		return nil, s.withSuggestion(err)
	}

	s.logger.Debug().
		Str("template", out.TemplateID).
		Str("scheme", out.ColorSchemeID).
		Str("format", string(out.Format)).
		Msg("Rendered frog")

	return out, nil
}

// RandomRequest selects the scheme behavior of RenderRandom
type RandomRequest struct {
	SchemeID     string
	RandomScheme bool
	Format       models.Format
}

// RenderRandom renders a uniformly chosen template. It only fails when an
// explicit scheme id does not exist or the format is unknown.
func (s *Service) RenderRandom(req RandomRequest) (*models.RenderedOutput, error) {
	var scheme *models.ColorScheme
	switch {
	case req.SchemeID != "":
		found, err := s.library.Schemes.Get(req.SchemeID)
		if err != nil {
			return nil, s.withSuggestion(err)
		}
		scheme = found
	case req.RandomScheme:
		scheme = s.library.Schemes.PickRandom()
	}

	tmpl := s.library.Templates.PickRandom()
	out, err := s.renderer.RenderTemplate(tmpl, scheme, req.Format)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("template", out.TemplateID).
		Str("scheme", out.ColorSchemeID).
		Msg("Rendered random frog")

	return out, nil
}

// ListTemplates returns every template summary in display order
func (s *Service) ListTemplates() []models.TemplateSummary {
	return s.library.Templates.List()
}

// ListColorSchemes returns every color scheme summary in display order
func (s *Service) ListColorSchemes() []models.SchemeSummary {
	return s.library.Schemes.List()
}

// GetTemplate returns the stored template, for callers that need its lines
func (s *Service) GetTemplate(id string) (*models.Template, error) {
	tmpl, err := s.library.Templates.Get(id)
	if err != nil {
		return nil, s.withSuggestion(err)
	}
	return tmpl, nil
}

// SearchTemplates fuzzy-matches query against template ids and names, best first.
// An empty query returns every template. limit <= 0 means no limit.
func (s *Service) SearchTemplates(query string, limit int) []models.SearchResult {
	summaries := s.library.Templates.List()

	var results []models.SearchResult
	if strings.TrimSpace(query) == "" {
		results = make([]models.SearchResult, 0, len(summaries))
		for _, summary := range summaries {
			results = append(results, models.SearchResult{TemplateSummary: summary})
		}
	} else {
		searchStrings := make([]string, 0, len(summaries))
		for _, summary := range summaries {
			searchStrings = append(searchStrings, fmt.Sprintf("%s %s", summary.ID, summary.Name))
		}

		matches := fuzzy.Find(query, searchStrings)
		results = make([]models.SearchResult, 0, len(matches))
		for _, match := range matches {
			results = append(results, models.SearchResult{
				TemplateSummary: summaries[match.Index],
				Score:           match.Score,
				MatchedIndexes:  match.MatchedIndexes,
			})
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// FormatClipboard strips the markup of format from text and appends the frog's
// name. An empty format is treated as ANSI. The result never ends in a newline.
func (s *Service) FormatClipboard(text, name string, format models.Format) (string, error) {
	if format == "" {
		format = models.FormatANSI
	}
	plain := strings.TrimRight(renderer.StripFormat(text, format), "\n")
	if strings.TrimSpace(plain) == "" {
		return "", errors.NewAppError(errors.ErrCodeMissingField, "Nothing to copy").
			WithDetails("ascii must not be empty")
	}
	if name == "" {
		return plain, nil
	}
	return fmt.Sprintf("%s\n\n🐸 %s", plain, name), nil
}

// TerminalConfig returns the terminal widget settings
func (s *Service) TerminalConfig() models.TerminalConfig {
	return s.terminal
}

// Health reports liveness and the size of the loaded tables
func (s *Service) Health() models.HealthStatus {
	now := s.now()
	uptime := now.Sub(s.started)

	return models.HealthStatus{
		Status:       "healthy",
		Service:      ServiceName,
		Version:      s.version,
		Uptime:       uptime.Seconds(),
		UptimeHuman:  uptime.Truncate(time.Second).String(),
		Templates:    s.library.Templates.Len(),
		ColorSchemes: s.library.Schemes.Len(),
		Timestamp:    now,
	}
}

// Version returns the build version reported by Health
func (s *Service) Version() string {
	return s.version
}

// withSuggestion adds a "did you mean" hint to NotFound errors
func (s *Service) withSuggestion(err error) error {
	if !errors.IsNotFound(err) {
		return err
	}

	appErr := errors.GetAppError(err)
	id, _ := appErr.Context["id"].(string)
	entity, _ := appErr.Context["entity"].(string)

	candidates := s.library.Templates.IDs()
	if entity == "color scheme" {
		candidates = s.library.Schemes.IDs()
	}

	if id != "" {
		if matches := fuzzy.Find(id, candidates); len(matches) > 0 {
			return appErr.WithDetails(fmt.Sprintf("did you mean %q?", matches[0].Str))
		}
	}
	return appErr.WithDetails("available: " + strings.Join(candidates, ", "))
}
