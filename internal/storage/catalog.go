package storage

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Catalog is the on-disk form of extra templates and color schemes
type Catalog struct {
	Templates    []models.Template    `yaml:"templates"`
	ColorSchemes []models.ColorScheme `yaml:"color_schemes"`
}

// LoadCatalog reads a YAML catalog file. Entries are tagged with path as their source.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "Catalog file not found").
				WithContext("path", path)
		}
		return nil, errors.CatalogError(path, err)
	}

	catalog, err := DecodeCatalog(bytes.NewReader(data))
	if err != nil {
		return nil, errors.CatalogError(path, err)
	}

	for i := range catalog.Templates {
		catalog.Templates[i].Source = path
	}
	for i := range catalog.ColorSchemes {
		catalog.ColorSchemes[i].Source = path
	}

	return catalog, nil
}

// DecodeCatalog parses a YAML catalog, rejecting unknown fields
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		if stderrors.Is(err, io.EOF) {
			return &catalog, nil
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return &catalog, nil
}

// Library bundles the two stores every interface works against
type Library struct {
	Templates *TemplateStore
	Schemes   *SchemeStore
}

// NewLibrary builds the stores from the builtin tables followed by the catalog at
// catalogPath, if one is given. Catalog ids must not collide with builtin ids.
func NewLibrary(catalogPath string, logger zerolog.Logger, opts ...Option) (*Library, error) {
	templates := BuiltinTemplates()
	schemes := BuiltinColorSchemes()

	if catalogPath != "" {
		catalog, err := LoadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
		templates = append(templates, catalog.Templates...)
		schemes = append(schemes, catalog.ColorSchemes...)

		logger.Debug().
			Str("path", catalogPath).
			Int("templates", len(catalog.Templates)).
			Int("color_schemes", len(catalog.ColorSchemes)).
			Msg("Loaded catalog")
	}

	return newLibrary(templates, schemes, logger, opts...)
}

func newLibrary(templates []models.Template, schemes []models.ColorScheme, logger zerolog.Logger, opts ...Option) (*Library, error) {
	templateStore, err := NewTemplateStore(templates, opts...)
	if err != nil {
		return nil, err
	}

	schemeStore, err := NewSchemeStore(schemes, opts...)
	if err != nil {
		return nil, err
	}

	for _, scheme := range schemeStore.All() {
		if missing := scheme.MissingRoles(); len(missing) > 0 {
			logger.Warn().
				Str("scheme", scheme.ID).
				Interface("missing_roles", missing).
				Msg("Color scheme does not define every role; those characters render unstyled")
		}
	}

	return &Library{
		Templates: templateStore,
		Schemes:   schemeStore,
	}, nil
}

// MustBuiltinLibrary returns the library made of the compiled-in tables only
func MustBuiltinLibrary(opts ...Option) *Library {
	lib, err := newLibrary(BuiltinTemplates(), BuiltinColorSchemes(), zerolog.Nop(), opts...)
	if err != nil {
		panic(fmt.Sprintf("builtin tables are invalid: %v", err))
	}
	return lib
}
