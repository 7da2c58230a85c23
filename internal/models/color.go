package models

import "strings"

var namedColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// ColorNames lists the named color tokens, without the "bright" variants
var ColorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ANSIIndex returns the 16-color palette index of a named token such as "cyan" or "brightcyan"
func ANSIIndex(token string) (int, bool) {
	name := strings.ToLower(token)
	offset := 0
	if rest, ok := strings.CutPrefix(name, "bright"); ok {
		name = rest
		offset = 8
	}
	index, ok := namedColors[name]
	if !ok {
		return 0, false
	}
	return index + offset, true
}

// IsHexColor reports whether token has the form #rrggbb
func IsHexColor(token string) bool {
	if len(token) != 7 || token[0] != '#' {
		return false
	}
	for _, c := range token[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ValidColorToken reports whether token is a named color or a hex color
func ValidColorToken(token string) bool {
	if IsHexColor(token) {
		return true
	}
	_, ok := ANSIIndex(token)
	return ok
}
