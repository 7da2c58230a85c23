package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/froggen/ascii-frog/internal/clipboard"
	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, opts Options, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if opts.Version == "" {
		opts.Version = "1.0.0-test"
	}
	if opts.IsTTY == nil {
		opts.IsTTY = func() bool { return false }
	}
	if opts.Clipboard == nil {
		opts.Clipboard = fakeClipboard(nil)
	}

	cmd := NewRootCmd(opts)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// fakeClipboard pretends pbcopy is installed and records what it receives
func fakeClipboard(copied *string) *clipboard.Clipboard {
	return clipboard.New(
		clipboard.WithGOOS("darwin"),
		clipboard.WithLookPath(func(name string) (string, error) { return "/usr/bin/" + name, nil }),
		clipboard.WithRunner(func(_ context.Context, _ clipboard.Tool, text string) error {
			if copied != nil {
				*copied = text
			}
			return nil
		}),
	)
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.IsAppError(err), "expected AppError, got %v", err)
	require.Equal(t, code, errors.GetAppError(err).Code)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderPlainWhenNotATerminal(t *testing.T) {
	res := runCLI(t, Options{}, "render", "classic", "--scheme", "tropical")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "()--()")
	require.NotContains(t, res.stdout, "\x1b[")
}

func TestRenderDefaultsToClassic(t *testing.T) {
	res := runCLI(t, Options{}, "render")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, ".-(___)-.")
}

func TestRenderJSON(t *testing.T) {
	res := runCLI(t, Options{}, "render", "happy", "-s", "fire", "-f", "json")
	require.NoError(t, res.err)

	var out models.RenderedOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Equal(t, "happy", out.TemplateID)
	require.Equal(t, "fire", out.ColorSchemeID)
	require.Equal(t, models.FormatANSI, out.Format)
}

func TestRenderHTML(t *testing.T) {
	res := runCLI(t, Options{}, "render", "classic", "-s", "tropical", "-f", "html")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, `class="frog-eyes"`)
}

func TestRenderErrors(t *testing.T) {
	res := runCLI(t, Options{}, "render", "clasic")
	requireCode(t, res.err, errors.ErrCodeNotFound)
	require.Equal(t, `did you mean "classic"?`, errors.GetAppError(res.err).Details)

	res = runCLI(t, Options{}, "render", "classic", "-s", "nope")
	requireCode(t, res.err, errors.ErrCodeNotFound)

	res = runCLI(t, Options{}, "render", "classic", "-f", "sixel")
	require.Error(t, res.err)
	require.True(t, errors.IsAppError(res.err))
}

func TestRandom(t *testing.T) {
	res := runCLI(t, Options{}, "random", "-r", "-f", "json")
	require.NoError(t, res.err)

	var out models.RenderedOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.NotEmpty(t, out.TemplateID)
	require.NotEmpty(t, out.ColorSchemeID)

	res = runCLI(t, Options{}, "random", "-s", "royal", "-f", "json")
	require.NoError(t, res.err)
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Equal(t, "royal", out.ColorSchemeID)
}

func TestCopy(t *testing.T) {
	var copied string
	res := runCLI(t, Options{Clipboard: fakeClipboard(&copied)}, "copy", "classic", "-s", "tropical")
	require.NoError(t, res.err)
	require.Equal(t, "Copied Classic Frog to clipboard\n", res.stdout)
	require.NotContains(t, copied, "\x1b[")
	require.True(t, strings.HasSuffix(copied, "\n\n🐸 Classic Frog"))
}

func TestCopyWithoutClipboardTool(t *testing.T) {
	cb := clipboard.New(
		clipboard.WithGOOS("linux"),
		clipboard.WithLookPath(func(string) (string, error) { return "", exec.ErrNotFound }),
	)
	res := runCLI(t, Options{Clipboard: cb}, "copy", "tiny")
	requireCode(t, res.err, errors.ErrCodeClipboardUnavailable)
	require.Empty(t, res.stdout)
}

func TestListFormats(t *testing.T) {
	res := runCLI(t, Options{}, "list", "-f", "ids")
	require.NoError(t, res.err)
	require.Equal(t, "tiny\nclassic\nhappy\nsitting\nlarge\nsimple\nwonder\n", res.stdout)

	res = runCLI(t, Options{}, "ls", "--format", "json")
	require.NoError(t, res.err)
	var templates []models.TemplateSummary
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &templates))
	require.Len(t, templates, 7)
	require.Equal(t, "Tiny Frog", templates[0].Name)

	res = runCLI(t, Options{}, "list")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "Templates")
	require.Contains(t, res.stdout, "Classic Frog")

	res = runCLI(t, Options{}, "list", "-f", "xml")
	requireCode(t, res.err, errors.ErrCodeValidation)
}

func TestSchemes(t *testing.T) {
	res := runCLI(t, Options{}, "schemes", "-f", "ids")
	require.NoError(t, res.err)
	ids := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, ids, 7)
	require.Equal(t, []string{"classic", "tropical"}, ids[:2])

	res = runCLI(t, Options{}, "schemes")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "Tropical")
	require.Contains(t, res.stdout, "magenta")
}

func TestSearch(t *testing.T) {
	res := runCLI(t, Options{}, "search", "clas")
	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.True(t, strings.HasPrefix(lines[1], "classic"))

	res = runCLI(t, Options{}, "search", "zzzzzz")
	require.NoError(t, res.err)
	require.Equal(t, "No templates match \"zzzzzz\"\n", res.stdout)

	res = runCLI(t, Options{}, "search", "frog", "--json", "-n", "2")
	require.NoError(t, res.err)
	var results []models.SearchResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &results))
	require.Len(t, results, 2)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	res := runCLI(t, Options{}, "--config", path, "config", "init")
	require.NoError(t, res.err)
	require.Equal(t, "Wrote "+path+"\n", res.stdout)

	res = runCLI(t, Options{}, "--config", path, "config", "init")
	requireCode(t, res.err, errors.ErrCodeAlreadyExists)

	res = runCLI(t, Options{}, "--config", path, "config", "init", "--force")
	require.NoError(t, res.err)

	res = runCLI(t, Options{}, "--config", path, "config", "show")
	require.NoError(t, res.err)
	require.True(t, strings.HasPrefix(res.stdout, "# "+path+"\n"))
	require.Contains(t, res.stdout, "port: 3000")
}

func TestMissingConfigFile(t *testing.T) {
	res := runCLI(t, Options{}, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	requireCode(t, res.err, errors.ErrCodeFileNotFound)
}

func TestCatalogFromConfig(t *testing.T) {
	catalog := writeFile(t, "frogs.yaml", `
templates:
  - id: pond
    name: Pond Frog
    lines:
      - " @..@"
      - "(----)"
    color_map:
      "@": eyes
`)
	cfg := writeFile(t, "config.yaml", "catalog:\n  path: "+catalog+"\n")

	res := runCLI(t, Options{}, "--config", cfg, "list", "-f", "ids")
	require.NoError(t, res.err)
	require.True(t, strings.HasSuffix(res.stdout, "wonder\npond\n"))

	res = runCLI(t, Options{}, "--config", cfg, "render", "pond")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "(----)")
}

func TestBadLogLevelFlag(t *testing.T) {
	res := runCLI(t, Options{}, "--log-level", "loud", "version")
	requireCode(t, res.err, errors.ErrCodeValidation)
}

func TestVersion(t *testing.T) {
	res := runCLI(t, Options{}, "version")
	require.NoError(t, res.err)
	require.Equal(t, "ascii-frog 1.0.0-test\n", res.stdout)
}

func TestRootRequiresTerminal(t *testing.T) {
	res := runCLI(t, Options{})
	requireCode(t, res.err, errors.ErrCodeInvalidInput)

	res = runCLI(t, Options{}, "tui")
	requireCode(t, res.err, errors.ErrCodeInvalidInput)
}

func TestFormatError(t *testing.T) {
	require.Equal(t, "❌ ERROR: boom", formatError(stderrors.New("boom")))

	msg := formatError(errors.NotFoundError("template", "nope"))
	require.Contains(t, msg, "nope")
}
