package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Role is a semantic tag attached to characters of a template, independent of any color
type Role string

const (
	RoleBody   Role = "body"
	RoleEyes   Role = "eyes"
	RoleAccent Role = "accent"
)

// Roles lists every role a color scheme is expected to define, in display order
var Roles = []Role{RoleBody, RoleEyes, RoleAccent}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleBody, RoleEyes, RoleAccent:
		return true
	default:
		return false
	}
}

// ColorMap tags single characters with a role. Keys are exactly one code point.
type ColorMap map[string]Role

// RoleOf returns the role tagged on ch, if any
func (m ColorMap) RoleOf(ch rune) (Role, bool) {
	role, ok := m[string(ch)]
	return role, ok
}

// Template represents a named piece of multi-line ASCII art
type Template struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Lines    []string `yaml:"lines" json:"lines"`
	ColorMap ColorMap `yaml:"color_map,omitempty" json:"colorMap,omitempty"`

	// Source is "builtin" or the catalog file the template came from
	Source string `yaml:"-" json:"-"`
}

// Colorizable reports whether the template carries role tags at all
func (t *Template) Colorizable() bool {
	return len(t.ColorMap) > 0
}

// Preview returns the first line of the art
func (t *Template) Preview() string {
	if len(t.Lines) == 0 {
		return ""
	}
	return t.Lines[0]
}

// Text joins the lines with a trailing newline after the last one
func (t *Template) Text() string {
	var b strings.Builder
	for _, line := range t.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary returns the list view of the template
func (t *Template) Summary() TemplateSummary {
	return TemplateSummary{
		ID:      t.ID,
		Name:    t.Name,
		Preview: t.Preview(),
	}
}

// Validate checks the invariants every stored template must hold
func (t *Template) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("template id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template %q: name is required", t.ID)
	}
	if len(t.Lines) == 0 {
		return fmt.Errorf("template %q: at least one line is required", t.ID)
	}
	for key, role := range t.ColorMap {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("template %q: color map key %q must be a single character", t.ID, key)
		}
		if !role.Valid() {
			return fmt.Errorf("template %q: color map key %q has unknown role %q", t.ID, key, role)
		}
	}
	return nil
}

// TemplateSummary is the list entry for a template
type TemplateSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Preview string `json:"preview"`
}

// FilterValue satisfies the bubbles list.Item interface
func (s TemplateSummary) FilterValue() string {
	return s.ID + " " + s.Name
}

// Title satisfies the list.DefaultItem interface
func (s TemplateSummary) Title() string {
	return s.Name
}

// Description satisfies the list.DefaultItem interface
func (s TemplateSummary) Description() string {
	return s.ID + " • " + strings.TrimSpace(s.Preview)
}
