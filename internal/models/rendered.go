package models

// Format selects the presentation of a rendered frog
type Format string

const (
	FormatPlain Format = "plain"
	FormatANSI  Format = "ansi"
	FormatHTML  Format = "html"
)

// Formats lists every supported presentation
var Formats = []Format{FormatPlain, FormatANSI, FormatHTML}

// ParseFormat returns the Format named by s. The empty string is not a format.
func ParseFormat(s string) (Format, bool) {
	for _, f := range Formats {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Cell is one classified character. Color is empty when the character is emitted unstyled.
type Cell struct {
	Char  rune
	Role  Role
	Color string
}

// Styled reports whether a presenter should wrap the cell
func (c Cell) Styled() bool {
	return c.Color != ""
}

// Frame holds one row of cells per template line
type Frame [][]Cell

// RenderedOutput is the result of rendering a template, produced fresh on every request
type RenderedOutput struct {
	Text            string `json:"ascii"`
	TemplateID      string `json:"template"`
	TemplateName    string `json:"templateName"`
	ColorSchemeID   string `json:"colorScheme,omitempty"`
	ColorSchemeName string `json:"colorSchemeName,omitempty"`
	Format          Format `json:"format"`
}
