package models

import "time"

// TerminalTheme holds the colors of the terminal widget
type TerminalTheme struct {
	Background string `mapstructure:"background" yaml:"background" json:"background"`
	Foreground string `mapstructure:"foreground" yaml:"foreground" json:"foreground"`
	Cursor     string `mapstructure:"cursor" yaml:"cursor" json:"cursor"`
}

// TerminalMessages holds the fixed lines shown above every frog
type TerminalMessages struct {
	Welcome string `mapstructure:"welcome" yaml:"welcome" json:"welcome"`
	Prompt  string `mapstructure:"prompt" yaml:"prompt" json:"prompt"`
}

// TerminalConfig describes how clients should draw the terminal widget
type TerminalConfig struct {
	Messages   TerminalMessages `mapstructure:"messages" yaml:"messages" json:"messages"`
	Theme      TerminalTheme    `mapstructure:"theme" yaml:"theme" json:"theme"`
	FontFamily string           `mapstructure:"font_family" yaml:"font_family" json:"fontFamily"`
	FontSize   int              `mapstructure:"font_size" yaml:"font_size" json:"fontSize"`
	Rows       int              `mapstructure:"rows" yaml:"rows" json:"rows"`
	Cols       int              `mapstructure:"cols" yaml:"cols" json:"cols"`
}

// DefaultTerminalConfig returns the stock widget settings
func DefaultTerminalConfig() TerminalConfig {
	return TerminalConfig{
		Messages: TerminalMessages{
			Welcome: "🐸  Welcome to ascii-frog Terminal!",
			Prompt:  "frog@terminal:~$ ",
		},
		Theme: TerminalTheme{
			Background: "#0d1117",
			Foreground: "#e6edf3",
			Cursor:     "#58a6ff",
		},
		FontFamily: "Fira Code, monospace",
		FontSize:   14,
		Rows:       24,
		Cols:       80,
	}
}

// HealthStatus is reported by the health endpoint and command
type HealthStatus struct {
	Status       string    `json:"status"`
	Service      string    `json:"service"`
	Version      string    `json:"version"`
	Uptime       float64   `json:"uptime"`
	UptimeHuman  string    `json:"uptimeHuman"`
	Templates    int       `json:"templates"`
	ColorSchemes int       `json:"colorSchemes"`
	Timestamp    time.Time `json:"timestamp"`
}

// SearchResult is one fuzzy match over the template list
type SearchResult struct {
	TemplateSummary
	Score          int   `json:"score"`
	MatchedIndexes []int `json:"matchedIndexes"`
}
