package storage

import "github.com/froggen/ascii-frog/internal/models"

// SourceBuiltin marks templates and schemes compiled into the binary
const SourceBuiltin = "builtin"

// DefaultTemplateID is rendered when a request names no template
const DefaultTemplateID = "classic"

// BuiltinTemplates returns a fresh copy of the compiled-in frog table, in display order
func BuiltinTemplates() []models.Template {
	return []models.Template{
		{
			ID:   "tiny",
			Name: "Tiny Frog",
			Lines: []string{
				"     00",
				"  (\\_--/)",
				"   // \\\\",
				"  ^^   ^^",
			},
			ColorMap: models.ColorMap{
				"0":  models.RoleEyes,
				"(":  models.RoleBody,
				")":  models.RoleBody,
				"\\": models.RoleBody,
				"/":  models.RoleBody,
				"_":  models.RoleBody,
				"-":  models.RoleAccent,
				"^":  models.RoleAccent,
			},
		},
		{
			ID:   "classic",
			Name: "Classic Frog",
			Lines: []string{
				"        ()--()",
				"      .-(___)-.",
				"       _<   >_",
				"       \\/   \\/",
			},
			ColorMap: models.ColorMap{
				"(":  models.RoleEyes,
				")":  models.RoleEyes,
				"-":  models.RoleEyes,
				".":  models.RoleBody,
				"_":  models.RoleBody,
				"<":  models.RoleBody,
				">":  models.RoleBody,
				"\\": models.RoleBody,
				"/":  models.RoleBody,
			},
		},
		{
			ID:   "happy",
			Name: "Happy Frog",
			Lines: []string{
				"     (l)-(l)",
				"     /_____\\",
				"     \\_____/",
				"      /00\\",
				"  _/^(----)^\\_",
				" ^^^^^^^^^^^^^^",
			},
			ColorMap: models.ColorMap{
				"l":  models.RoleEyes,
				"(":  models.RoleEyes,
				")":  models.RoleEyes,
				"/":  models.RoleBody,
				"\\": models.RoleBody,
				"_":  models.RoleBody,
				"0":  models.RoleEyes,
				"-":  models.RoleAccent,
				"^":  models.RoleAccent,
			},
		},
		{
			ID:   "sitting",
			Name: "Sitting Frog",
			Lines: []string{
				"           _   _",
				"          (o)-(o)",
				"       .-(   \"   )-.",
				"      /  /`'-=-'`\\  \\",
				"   __\\ _\\ \\___/ /_ /__",
				"     /|  /|\\ /|\\  |\\",
				"    ^^   ^^  ^^   ^^",
			},
			ColorMap: models.ColorMap{
				"(":  models.RoleEyes,
				")":  models.RoleEyes,
				"o":  models.RoleEyes,
				".":  models.RoleBody,
				"-":  models.RoleBody,
				"/":  models.RoleBody,
				"\\": models.RoleBody,
				"_":  models.RoleBody,
				"|":  models.RoleBody,
				"'":  models.RoleAccent,
				"=":  models.RoleAccent,
				"^":  models.RoleAccent,
			},
		},
		{
			ID:   "large",
			Name: "Large Frog",
			Lines: []string{
				"           .--._.--.",
				"          ( O     O )",
				"          /   . .   \\",
				"         .`._______.'.",
				"        /(           )\\",
				"      _/  \\  \\   /  /  \\_",
				"   .~   `  \\  \\ /  /  '   ~.",
				"  {    -.   \\  V  /   .-    }",
				" _ _`.    \\  |  |  |  /    .' _ _",
				" >_       _} |  |  | {_       _<",
				"  /. - ~ ,_-'  .^.  `-_, ~ - .\\",
				"          '-'|/   \\|`-`",
			},
			ColorMap: models.ColorMap{
				".":  models.RoleBody,
				"-":  models.RoleBody,
				"(":  models.RoleBody,
				")":  models.RoleBody,
				"O":  models.RoleEyes,
				"/":  models.RoleBody,
				"\\": models.RoleBody,
				"_":  models.RoleBody,
				"|":  models.RoleBody,
				"~":  models.RoleAccent,
				"^":  models.RoleAccent,
				"V":  models.RoleAccent,
				"`":  models.RoleBody,
				"'":  models.RoleBody,
				"{":  models.RoleBody,
				"}":  models.RoleBody,
				"<":  models.RoleBody,
				">":  models.RoleBody,
			},
		},
		{
			ID:   "simple",
			Name: "Simple Frog",
			Lines: []string{
				"        00         ",
				"      (\\__/)       ",
				" __(  I I   I I  )__",
			},
			ColorMap: models.ColorMap{
				"0":  models.RoleEyes,
				"(":  models.RoleBody,
				")":  models.RoleBody,
				"\\": models.RoleBody,
				"/":  models.RoleBody,
				"_":  models.RoleBody,
				"I":  models.RoleBody,
			},
		},
		{
			// No color map: always rendered plain.
			ID:   "wonder",
			Name: "Wonder Frog",
			Lines: []string{
				"       *  .  *",
				"    .    ★    .",
				"      (◕‿◕)",
				"    .-'`~~~~`'-.",
				"   /  ∙    ∙  \\",
				"  |    ~~~~    |",
				"   \\  '.__.' /",
				"    `-._~~_.-'",
				"      /|  |\\",
				"     ^^    ^^",
				"    *   ★   *",
			},
		},
	}
}

// BuiltinColorSchemes returns a fresh copy of the compiled-in color schemes, in display order
func BuiltinColorSchemes() []models.ColorScheme {
	scheme := func(id, name, body, eyes, accent string) models.ColorScheme {
		return models.ColorScheme{
			ID:   id,
			Name: name,
			Roles: map[models.Role]string{
				models.RoleBody:   body,
				models.RoleEyes:   eyes,
				models.RoleAccent: accent,
			},
		}
	}

	return []models.ColorScheme{
		scheme("classic", "Classic", "green", "yellow", "white"),
		scheme("tropical", "Tropical", "cyan", "magenta", "yellow"),
		scheme("fire", "Fire", "red", "yellow", "white"),
		scheme("nature", "Nature", "green", "blue", "yellow"),
		scheme("royal", "Royal", "blue", "yellow", "white"),
		scheme("neon", "Neon", "cyan", "green", "magenta"),
		scheme("galaxy", "Galaxy", "magenta", "cyan", "yellow"),
	}
}
