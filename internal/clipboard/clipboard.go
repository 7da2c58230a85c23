// Package clipboard copies plain-text frogs to the system clipboard through
// the platform's clipboard utility (pbcopy, xclip, xsel, wl-copy or clip).
package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/froggen/ascii-frog/internal/errors"
)

// Tool is one clipboard utility invocation
type Tool struct {
	Name string
	Args []string
}

// Runner executes a tool with text on stdin
type Runner func(ctx context.Context, tool Tool, text string) error

// Clipboard writes to the first usable tool for its platform
type Clipboard struct {
	goos     string
	lookPath func(string) (string, error)
	run      Runner
}

// Option configures a Clipboard
type Option func(*Clipboard)

// WithGOOS overrides the platform used to choose tools
func WithGOOS(goos string) Option {
	return func(c *Clipboard) { c.goos = goos }
}

// WithLookPath overrides how tools are located
func WithLookPath(fn func(string) (string, error)) Option {
	return func(c *Clipboard) { c.lookPath = fn }
}

// WithRunner overrides how tools are executed
func WithRunner(run Runner) Option {
	return func(c *Clipboard) { c.run = run }
}

// New returns a clipboard for the current platform
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runTool,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func runTool(ctx context.Context, tool Tool, text string) error {
	cmd := exec.CommandContext(ctx, tool.Name, tool.Args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", tool.Name, err, msg)
		}
		return fmt.Errorf("%s failed: %w", tool.Name, err)
	}
	return nil
}

// Tools lists the utilities tried on goos, in order
func Tools(goos string) []Tool {
	switch goos {
	case "darwin":
		return []Tool{{Name: "pbcopy"}}
	case "windows":
		return []Tool{{Name: "clip"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Tool{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		}
	default:
		return nil
	}
}

// Available reports whether any tool for the platform is installed
func (c *Clipboard) Available() bool {
	for _, tool := range Tools(c.goos) {
		if _, err := c.lookPath(tool.Name); err == nil {
			return true
		}
	}
	return false
}

// Copy writes text to the clipboard. The error is CLIPBOARD_UNAVAILABLE
// when no tool is installed or every installed tool failed.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	var lastErr error
	found := false

	for _, tool := range Tools(c.goos) {
		if _, err := c.lookPath(tool.Name); err != nil {
			continue
		}
		found = true

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.run(ctx, tool, text); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if !found {
		return errors.ClipboardError(fmt.Errorf("no clipboard utility found on %s", c.goos)).
			WithDetails(InstallInstructions(c.goos))
	}
	return errors.ClipboardError(lastErr)
}

// InstallInstructions returns a hint for installing a clipboard utility
func InstallInstructions(goos string) string {
	switch goos {
	case "linux":
		return "install wl-clipboard (Wayland) or xclip/xsel (X11), e.g. sudo apt install xclip"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("clipboard not supported on %s", goos)
	}
}
