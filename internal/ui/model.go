// Package ui implements the interactive terminal widget with bubbletea.
//
// The widget mirrors the browser terminal: a template list on the left and a
// themed terminal pane on the right that shows the welcome line, the current
// frog, its name and the prompt. Colors cycle through every scheme plus an
// uncolored state, and the current frog can be copied to the system clipboard.
package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/rs/zerolog"
)

const (
	statusTimeout = 3 * time.Second
	minListWidth  = 24
	minPaneCols   = 20
	cursor        = "█"
)

// Copier puts text on the system clipboard
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// Options configures the widget
type Options struct {
	Clipboard Copier
	Logger    zerolog.Logger
}

type tickMsg struct {
	seq int
}

type copiedMsg struct {
	name string
	err  error
}

// Model represents the widget state
type Model struct {
	ctx        context.Context
	service    *service.Service
	clipboard  Copier
	logger     zerolog.Logger
	errHandler *errors.TUIErrorHandler

	list     list.Model
	help     help.Model
	keys     KeyMap
	terminal models.TerminalConfig

	schemes     []models.SchemeSummary
	schemeIndex int // -1 renders without color

	current *models.RenderedOutput

	width  int
	height int

	statusMsg  string
	statusKind string
	statusSeq  int
}

// NewModel creates the widget showing the default template in the first scheme
func NewModel(ctx context.Context, svc *service.Service, opts Options) (Model, error) {
	templates := svc.ListTemplates()
	items := make([]list.Item, len(templates))
	selected := 0
	for i, t := range templates {
		items[i] = t
		if t.ID == storage.DefaultTemplateID {
			selected = i
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "🐸 Frogs"
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Select(selected)

	m := Model{
		ctx:         ctx,
		service:     svc,
		clipboard:   opts.Clipboard,
		logger:      opts.Logger,
		errHandler:  errors.NewTUIErrorHandler(false, opts.Logger),
		list:        l,
		help:        help.New(),
		keys:        keys,
		terminal:    svc.TerminalConfig(),
		schemes:     svc.ListColorSchemes(),
		schemeIndex: -1,
	}
	if len(m.schemes) > 0 {
		m.schemeIndex = 0
	}

	out, err := svc.RenderByID(storage.DefaultTemplateID, m.schemeID(), models.FormatANSI)
	if err != nil {
		return Model{}, err
	}
	m.current = out
	return m, nil
}

// Run starts the widget and blocks until the user quits or ctx is canceled
func Run(ctx context.Context, svc *service.Service, opts Options) error {
	m, err := NewModel(ctx, svc, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("terminal widget failed: %w", err)
	}
	return nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listWidth()-2, max(msg.Height-4, 5))
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusKind = ""
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			return m, m.setError(msg.err)
		}
		m.logger.Debug().Str("template", msg.name).Msg("copied to clipboard")
		return m, m.setStatus(fmt.Sprintf("📋 Copied %s to clipboard", msg.name), "success")

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Render):
			item, ok := m.list.SelectedItem().(models.TemplateSummary)
			if !ok {
				return m, nil
			}
			return m, m.render(item.ID)

		case key.Matches(msg, m.keys.Random):
			return m, m.renderRandom()

		case key.Matches(msg, m.keys.NextScheme):
			m.cycleScheme(1)
			return m, m.rerender()

		case key.Matches(msg, m.keys.PrevScheme):
			m.cycleScheme(-1)
			return m, m.rerender()

		case key.Matches(msg, m.keys.Copy):
			return m, m.copy()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// schemeID returns the selected scheme, or "" when colors are off
func (m *Model) schemeID() string {
	if m.schemeIndex < 0 || m.schemeIndex >= len(m.schemes) {
		return ""
	}
	return m.schemes[m.schemeIndex].ID
}

func (m *Model) schemeName() string {
	if m.schemeIndex < 0 || m.schemeIndex >= len(m.schemes) {
		return "no colors"
	}
	return m.schemes[m.schemeIndex].Name
}

// cycleScheme steps through the schemes and the uncolored state
func (m *Model) cycleScheme(step int) {
	n := len(m.schemes) + 1
	m.schemeIndex = ((m.schemeIndex+1+step)%n+n)%n - 1
}

func (m *Model) render(id string) tea.Cmd {
	out, err := m.service.RenderByID(id, m.schemeID(), models.FormatANSI)
	if err != nil {
		return m.setError(err)
	}
	m.current = out
	return nil
}

func (m *Model) rerender() tea.Cmd {
	id := storage.DefaultTemplateID
	if m.current != nil {
		id = m.current.TemplateID
	}
	if cmd := m.render(id); cmd != nil {
		return cmd
	}
	return m.setStatus("🎨 "+m.schemeName(), "info")
}

func (m *Model) renderRandom() tea.Cmd {
	out, err := m.service.RenderRandom(service.RandomRequest{
		SchemeID: m.schemeID(),
		Format:   models.FormatANSI,
	})
	if err != nil {
		return m.setError(err)
	}
	m.current = out

	m.list.ResetFilter()
	for i, item := range m.list.Items() {
		if item.(models.TemplateSummary).ID == out.TemplateID {
			m.list.Select(i)
			break
		}
	}
	return nil
}

func (m *Model) copy() tea.Cmd {
	if m.current == nil {
		return m.setStatus("Nothing to copy yet", "info")
	}
	if m.clipboard == nil {
		return m.setError(errors.ClipboardError(nil))
	}

	ctx, svc, clip := m.ctx, m.service, m.clipboard
	out := *m.current
	return func() tea.Msg {
		text, err := svc.FormatClipboard(out.Text, out.TemplateName, out.Format)
		if err == nil {
			err = clip.Copy(ctx, text)
		}
		return copiedMsg{name: out.TemplateName, err: err}
	}
}

func (m *Model) setStatus(text, kind string) tea.Cmd {
	m.statusSeq++
	m.statusMsg = text
	m.statusKind = kind
	return clearStatusCmd(m.statusSeq)
}

func (m *Model) setError(err error) tea.Cmd {
	err = m.errHandler.HandleError(err)
	icon, _ := m.errHandler.GetErrorStyle(err)
	return m.setStatus(icon+" "+m.errHandler.FormatError(err), "error")
}

// clearStatusCmd clears the status line after a delay unless a newer status replaced it
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func (m Model) listWidth() int {
	return max(m.width/3, minListWidth)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading frogs..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		StyleListPane.Render(m.list.View()),
		m.terminalView(),
	)

	parts := []string{body}
	if m.statusMsg != "" {
		parts = append(parts, CreateStatus(m.statusMsg, m.statusKind))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// terminalView draws the themed pane holding the current frog
func (m Model) terminalView() string {
	cfg := m.terminal
	cols := cfg.Cols
	if avail := m.width - m.listWidth() - 4; avail < cols {
		cols = max(avail, minPaneCols)
	}
	// welcome, blank, name and prompt lines surround the art
	artRows := max(cfg.Rows-4, 1)

	var art, name string
	if m.current != nil {
		art = strings.TrimRight(m.current.Text, "\n")
		name = "🐸 " + m.current.TemplateName
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		cfg.Messages.Welcome,
		"",
		CenterModal(art, cols, artRows),
		StyleTitle.Render(name)+StyleTextDim.Render(m.schemeName()),
		promptStyle(cfg.Theme).Render(cfg.Messages.Prompt)+cursor,
	)
	return terminalStyle(cfg.Theme).Width(cols).Render(content)
}
