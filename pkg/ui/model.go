// Package ui is the bubbletea front end: an issue list beside a detail
// pane, driven by nav.Controller.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/backlog_viewer/pkg/nav"
	"github.com/kraitsura/backlog_viewer/pkg/store"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the top-level bubbletea model.
type Model struct {
	store *store.IssueStore
	ctrl  *nav.Controller
	keys  KeyMap
	help  help.Model

	detail    viewport.Model
	detailKey string // issue currently shown, "" when none
	md        *markdownRenderer

	// timeout bounds each controller call. Handle runs inside Update, so
	// a comment fetch holds the input loop until it settles.
	timeout time.Duration

	width, height int
	layout        paneLayout
	offset        int // first visible list row
	message       string
}

// Option configures a Model.
type Option func(*Model)

// WithKeyMap replaces DefaultKeyMap.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithActionTimeout bounds each controller action, fetch included.
func WithActionTimeout(d time.Duration) Option {
	return func(m *Model) { m.timeout = d }
}

// New creates a model over an already loaded store.
func New(s *store.IssueStore, ctrl *nav.Controller, opts ...Option) Model {
	m := Model{
		store: s,
		ctrl:  ctrl,
		keys:  DefaultKeyMap,
		help:  help.New(),
		md:    &markdownRenderer{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PageDown):
		m.detail.HalfViewDown()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.detail.HalfViewUp()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == nav.ActionNone {
		return m, nil
	}

	ctx := context.Background()
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	res := m.ctrl.Handle(ctx, action)
	if res.Quit {
		return m, tea.Quit
	}
	m.message = res.Message
	m.refresh()
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.layout = computeLayout(width, height)
	m.help.Width = width

	h := m.layout.detailHeight - 1
	if h < MinContentHeight {
		h = MinContentHeight
	}
	m.detail = viewport.New(m.layout.detailWidth, h)
	m.detailKey = ""
	m.refresh()
}

// listRows is the number of issue rows that fit under the pane title.
func (m Model) listRows() int {
	return m.layout.listHeight - 1
}

// refresh syncs the list scroll offset and the detail pane with the
// store's current selection.
func (m *Model) refresh() {
	list := m.store.List()
	cursor, ok := list.Index()
	if !ok {
		cursor = -1
	}
	m.offset, _ = visibleWindow(m.offset, cursor, list.Len(), m.listRows())

	issue, ok := m.store.SelectedIssue()
	if !ok {
		m.detail.SetContent(MetaStyle.Render("No issue selected."))
		m.detailKey = ""
		return
	}
	m.detail.SetContent(renderDetail(m.md, issue, m.layout.detailWidth))
	if issue.IssueKey != m.detailKey {
		m.detail.GotoTop()
		m.detailKey = issue.IssueKey
	}
}

func (m Model) View() string {
	listPane := m.panel(m.listView(), m.layout.listWidth, m.layout.listHeight)
	detailPane := m.panel(m.detailView(), m.layout.detailWidth, m.layout.detailHeight)

	var body string
	if m.layout.vertical {
		body = lipgloss.JoinVertical(lipgloss.Left, listPane, detailPane)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(), m.help.View(m.keys))
}

func (m Model) panel(content string, width, height int) string {
	return PanelStyle.
		Width(width).
		Height(height).
		MaxHeight(height + borderSize).
		Render(content)
}

func (m Model) listView() string {
	list := m.store.List()
	lines := []string{PanelTitleStyle.Render(padRight("Issues", m.layout.listWidth))}

	if list.Len() == 0 {
		lines = append(lines, MetaStyle.Render("No issues match the configured filter."))
		return strings.Join(lines, "\n")
	}

	cursor, ok := list.Index()
	if !ok {
		cursor = -1
	}
	end := m.offset + m.listRows()
	if end > list.Len() {
		end = list.Len()
	}
	for i := m.offset; i < end; i++ {
		lines = append(lines, renderRow(*list.At(i), m.layout.listWidth, i == cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) detailView() string {
	title := "Issue"
	if m.detailKey != "" {
		title = "Issue " + m.detailKey
	}
	return PanelTitleStyle.Render(truncate(title, m.layout.detailWidth)) + "\n" + m.detail.View()
}

func (m Model) statusBar() string {
	st := m.store.Stats()
	bar := fmt.Sprintf("%d issues • %d loaded • %d fetches", st.Issues, st.Loaded, st.Fetches)
	bar = truncate(bar, m.width)
	out := StatusBarStyle.Render(bar)
	if rest := m.width - lipgloss.Width(bar) - 2; m.message != "" && rest > 0 {
		out += "  " + MessageStyle.Render(truncate(m.message, rest))
	}
	return out
}
