package renderer

import (
	"fmt"
	"strings"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/muesli/termenv"
)

// Renderer resolves templates and color schemes and hands the classified
// characters to a presenter
type Renderer struct {
	templates     *storage.TemplateStore
	schemes       *storage.SchemeStore
	profile       termenv.Profile
	defaultFormat models.Format
}

// Option configures a Renderer
type Option func(*Renderer)

// WithColorProfile sets the terminal color profile used by the ANSI presenter
func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = profile
	}
}

// WithDefaultFormat sets the format used when a request names none
func WithDefaultFormat(format models.Format) Option {
	return func(r *Renderer) {
		r.defaultFormat = format
	}
}

// NewRenderer creates a new renderer over the library's stores
func NewRenderer(lib *storage.Library, opts ...Option) *Renderer {
	r := &Renderer{
		templates:     lib.Templates,
		schemes:       lib.Schemes,
		profile:       termenv.ANSI,
		defaultFormat: models.FormatPlain,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a template, colorized with schemeID when one is given.
// Both ids are resolved before any line is processed.
func (r *Renderer) Render(templateID, schemeID string, format models.Format) (*models.RenderedOutput, error) {
	tmpl, err := r.templates.Get(templateID)
	if err != nil {
		return nil, err
	}

	var scheme *models.ColorScheme
	if schemeID != "" {
		scheme, err = r.schemes.Get(schemeID)
		if err != nil {
			return nil, err
		}
	}

	return r.RenderTemplate(tmpl, scheme, format)
}

// RenderTemplate renders an already resolved template. scheme may be nil.
func (r *Renderer) RenderTemplate(tmpl *models.Template, scheme *models.ColorScheme, format models.Format) (*models.RenderedOutput, error) {
	presenter, err := r.Presenter(format)
	if err != nil {
		return nil, err
	}

	out := &models.RenderedOutput{
		Text:         presenter.Present(Classify(tmpl, scheme)),
		TemplateID:   tmpl.ID,
		TemplateName: tmpl.Name,
		Format:       presenter.Format(),
	}
	if scheme != nil {
		out.ColorSchemeID = scheme.ID
		out.ColorSchemeName = scheme.Name
	}

	return out, nil
}

// Presenter returns the presenter for format, or the default one for ""
func (r *Renderer) Presenter(format models.Format) (Presenter, error) {
	if format == "" {
		format = r.defaultFormat
	}

	switch format {
	case models.FormatPlain:
		return PlainPresenter{}, nil
	case models.FormatANSI:
		return ANSIPresenter{Profile: r.profile}, nil
	case models.FormatHTML:
		return HTMLPresenter{}, nil
	default:
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, fmt.Sprintf("Unknown format %q", format)).
			WithDetails("expected one of plain, ansi, html")
	}
}

// Classify tags every character of every line with its role and, when the
// scheme defines a color for that role, the color to wrap it with.
// Templates without a color map and a nil scheme yield only unstyled cells.
func Classify(tmpl *models.Template, scheme *models.ColorScheme) models.Frame {
	frame := make(models.Frame, 0, len(tmpl.Lines))

	for _, line := range tmpl.Lines {
		row := make([]models.Cell, 0, len(line))
		for _, ch := range line {
			cell := models.Cell{Char: ch}
			if role, ok := tmpl.ColorMap.RoleOf(ch); ok {
				cell.Role = role
				if color, ok := scheme.ColorFor(role); ok {
					cell.Color = color
				}
			}
			row = append(row, cell)
		}
		frame = append(frame, row)
	}

	return frame
}

// ParseColorProfile maps a config value to a termenv profile
func ParseColorProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(name) {
	case "", "ansi":
		return termenv.ANSI, nil
	case "ansi256", "256":
		return termenv.ANSI256, nil
	case "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "ascii", "none":
		return termenv.Ascii, nil
	default:
		return termenv.ANSI, fmt.Errorf("unknown color profile %q", name)
	}
}
