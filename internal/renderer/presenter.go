package renderer

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/muesli/termenv"
)

// Presenter turns a classified frame into text. Every presenter ends each
// line, including the last, with a newline.
type Presenter interface {
	Format() models.Format
	Present(frame models.Frame) string
}

// PlainPresenter emits characters only
type PlainPresenter struct{}

func (PlainPresenter) Format() models.Format { return models.FormatPlain }

func (PlainPresenter) Present(frame models.Frame) string {
	var b strings.Builder
	for _, row := range frame {
		for _, cell := range row {
			b.WriteRune(cell.Char)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ANSIPresenter wraps colored characters in SGR foreground sequences
type ANSIPresenter struct {
	Profile termenv.Profile
}

func (ANSIPresenter) Format() models.Format { return models.FormatANSI }

func (p ANSIPresenter) Present(frame models.Frame) string {
	var b strings.Builder
	for _, row := range frame {
		for _, cell := range row {
			if !cell.Styled() {
				b.WriteRune(cell.Char)
				continue
			}
			b.WriteString(p.Profile.String(string(cell.Char)).Foreground(p.color(cell.Color)).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// color converts a named or hex token into a color of the presenter's profile
func (p ANSIPresenter) color(token string) termenv.Color {
	if index, ok := models.ANSIIndex(token); ok {
		return p.Profile.Color(strconv.Itoa(index))
	}
	return p.Profile.Color(token)
}

// brightCSS holds CSS values for the bright half of the 16-color palette
var brightCSS = [8]string{"#7f7f7f", "#ff5555", "#55ff55", "#ffff55", "#5c5cff", "#ff55ff", "#55ffff", "#ffffff"}

// HTMLPresenter wraps colored characters in spans tagged with their role.
// All characters are escaped.
type HTMLPresenter struct{}

func (HTMLPresenter) Format() models.Format { return models.FormatHTML }

func (HTMLPresenter) Present(frame models.Frame) string {
	var b strings.Builder
	for _, row := range frame {
		for _, cell := range row {
			char := html.EscapeString(string(cell.Char))
			if !cell.Styled() {
				b.WriteString(char)
				continue
			}
			fmt.Fprintf(&b, `<span class="frog-%s" style="color:%s">%s</span>`, cell.Role, CSSColor(cell.Color), char)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CSSColor converts a color token into a CSS color value
func CSSColor(token string) string {
	if models.IsHexColor(token) {
		return strings.ToLower(token)
	}
	index, ok := models.ANSIIndex(token)
	if !ok {
		return "inherit"
	}
	if index < 8 {
		return models.ColorNames[index]
	}
	return brightCSS[index-8]
}

var spanTag = regexp.MustCompile(`</?span[^>]*>`)

// StripANSI removes terminal escape sequences
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// StripHTML removes the spans written by HTMLPresenter and unescapes the characters
func StripHTML(s string) string {
	return html.UnescapeString(spanTag.ReplaceAllString(s, ""))
}

// StripFormat reverses the presenter of format. HTML is unescaped whether or not
// it carries spans; every other format only loses its escape sequences.
func StripFormat(s string, format models.Format) string {
	if format == models.FormatHTML {
		return StripHTML(s)
	}
	return StripANSI(s)
}
