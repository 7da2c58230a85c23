package ui

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/renderer"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeCopier struct {
	texts []string
	err   error
}

func (f *fakeCopier) Copy(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func newTestModel(t *testing.T, copier Copier) Model {
	t.Helper()
	lib := storage.MustBuiltinLibrary(storage.WithRandom(func(n int) int { return n - 1 }))
	svc := service.NewService(lib, renderer.NewRenderer(lib), service.Options{
		Version:  "test",
		Terminal: models.DefaultTerminalConfig(),
		Logger:   zerolog.Nop(),
	})

	m, err := NewModel(context.Background(), svc, Options{Clipboard: copier, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func press(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestNewModelShowsDefaultFrog(t *testing.T) {
	m := newTestModel(t, nil)

	require.NotNil(t, m.current)
	require.Equal(t, "classic", m.current.TemplateID)
	require.Equal(t, "classic", m.current.ColorSchemeID)
	require.Equal(t, models.FormatANSI, m.current.Format)
	require.Equal(t, 1, m.list.Index())
	require.Len(t, m.list.Items(), 7)

	item, ok := m.list.SelectedItem().(list.DefaultItem)
	require.True(t, ok)
	require.Equal(t, "Classic Frog", item.Title())
	require.True(t, strings.HasPrefix(item.Description(), "classic • "))
}

func TestRenderSelectedTemplate(t *testing.T) {
	m := newTestModel(t, nil)
	m.list.Select(2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "happy", m.current.TemplateID)
	require.Equal(t, "classic", m.current.ColorSchemeID)

	m.list.Select(0)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.Equal(t, "tiny", m.current.TemplateID)
}

func TestCycleSchemes(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := press(t, m, 'c')
	require.NotNil(t, cmd)
	require.Equal(t, "tropical", m.current.ColorSchemeID)
	require.Equal(t, "classic", m.current.TemplateID)
	require.Equal(t, "🎨 Tropical", m.statusMsg)

	m, _ = press(t, m, 'C')
	m, _ = press(t, m, 'C')
	require.Equal(t, -1, m.schemeIndex)
	require.Empty(t, m.current.ColorSchemeID)
	require.Equal(t, "🎨 no colors", m.statusMsg)

	m, _ = press(t, m, 'C')
	require.Equal(t, len(m.schemes)-1, m.schemeIndex)

	m, _ = press(t, m, 'c')
	m, _ = press(t, m, 'c')
	require.Equal(t, 0, m.schemeIndex)
	require.Equal(t, "classic", m.current.ColorSchemeID)
}

func TestRandomSelectsTemplate(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, 'r')
	require.Equal(t, "wonder", m.current.TemplateID)
	require.Equal(t, "classic", m.current.ColorSchemeID, "random keeps the current scheme")
	require.Equal(t, 6, m.list.Index())
}

func TestCopyCurrentFrog(t *testing.T) {
	copier := &fakeCopier{}
	m := newTestModel(t, copier)

	m, cmd := press(t, m, 'y')
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, copiedMsg{}, msg)

	m, _ = update(t, m, msg)
	require.Equal(t, "📋 Copied Classic Frog to clipboard", m.statusMsg)
	require.Equal(t, "success", m.statusKind)

	require.Len(t, copier.texts, 1)
	require.NotContains(t, copier.texts[0], "\x1b[")
	require.Contains(t, copier.texts[0], "\n\n🐸 Classic Frog")
}

func TestCopyFailureShowsError(t *testing.T) {
	boom := stderrors.New("xclip exploded")
	m := newTestModel(t, &fakeCopier{err: errors.ClipboardError(boom)})

	m, cmd := press(t, m, 'y')
	m, _ = update(t, m, cmd())
	require.Equal(t, "error", m.statusKind)
	require.Contains(t, m.statusMsg, "Clipboard is not available")
}

func TestCopyWithoutClipboard(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := press(t, m, 'y')
	require.NotNil(t, cmd)
	require.Equal(t, "error", m.statusKind)
	require.Contains(t, m.statusMsg, "Clipboard is not available")
}

func TestStatusClearsOnLatestTick(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, 'c')
	m, _ = press(t, m, 'c')
	require.Equal(t, 2, m.statusSeq)

	m, _ = update(t, m, tickMsg{seq: 1})
	require.NotEmpty(t, m.statusMsg, "stale tick keeps the newer status")

	m, _ = update(t, m, tickMsg{seq: 2})
	require.Empty(t, m.statusMsg)
}

func TestHelpAndQuit(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, '?')
	require.True(t, m.help.ShowAll)
	m, _ = press(t, m, '?')
	require.False(t, m.help.ShowAll)

	_, cmd := press(t, m, 'q')
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFilteringCapturesKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = press(t, m, '/')
	require.Equal(t, list.Filtering, m.list.FilterState())

	m, _ = press(t, m, 'q')
	require.Equal(t, list.Filtering, m.list.FilterState())
	require.Equal(t, "classic", m.current.TemplateID)
}

func TestView(t *testing.T) {
	m := newTestModel(t, nil)
	require.Equal(t, "Loading frogs...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	require.Contains(t, view, "Welcome to ascii-frog Terminal!")
	require.Contains(t, view, "Classic Frog")
	require.Contains(t, view, "frog@terminal:~$")
	require.Contains(t, view, "Tiny Frog")
}
