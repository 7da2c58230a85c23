package models

import (
	"fmt"
	"strings"
)

// ColorScheme maps roles to color tokens. A token is a terminal color name
// ("green", "brightcyan", ...) or a "#rrggbb" hex value.
type ColorScheme struct {
	ID    string          `yaml:"id" json:"id"`
	Name  string          `yaml:"name" json:"name"`
	Roles map[Role]string `yaml:"roles" json:"roles"`

	Source string `yaml:"-" json:"-"`
}

// ColorFor returns the color token for role, if the scheme defines one
func (c *ColorScheme) ColorFor(role Role) (string, bool) {
	if c == nil {
		return "", false
	}
	color, ok := c.Roles[role]
	if !ok || color == "" {
		return "", false
	}
	return color, true
}

// MissingRoles lists the known roles the scheme does not define
func (c *ColorScheme) MissingRoles() []Role {
	var missing []Role
	for _, role := range Roles {
		if _, ok := c.ColorFor(role); !ok {
			missing = append(missing, role)
		}
	}
	return missing
}

// Summary returns the list view of the scheme
func (c *ColorScheme) Summary() SchemeSummary {
	roles := make(map[Role]string, len(c.Roles))
	for role, color := range c.Roles {
		roles[role] = color
	}
	return SchemeSummary{
		ID:    c.ID,
		Name:  c.Name,
		Roles: roles,
	}
}

// Validate checks the invariants every stored scheme must hold. Missing roles
// are allowed; characters tagged with them are left unstyled.
func (c *ColorScheme) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("color scheme id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("color scheme %q: name is required", c.ID)
	}
	if len(c.Roles) == 0 {
		return fmt.Errorf("color scheme %q: at least one role is required", c.ID)
	}
	for role, color := range c.Roles {
		if !role.Valid() {
			return fmt.Errorf("color scheme %q: unknown role %q", c.ID, role)
		}
		if color != "" && !ValidColorToken(color) {
			return fmt.Errorf("color scheme %q: role %q has invalid color %q", c.ID, role, color)
		}
	}
	return nil
}

// SchemeSummary is the list entry for a color scheme
type SchemeSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Roles map[Role]string `json:"roles"`
}
