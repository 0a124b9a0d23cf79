package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/backlog_viewer/pkg/model"
	"github.com/kraitsura/backlog_viewer/pkg/nav"
	"github.com/kraitsura/backlog_viewer/pkg/store"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

type fakeFetcher struct {
	calls []string
}

func (f *fakeFetcher) FetchComments(_ context.Context, key string) ([]model.Comment, error) {
	f.calls = append(f.calls, key)
	body := "comment on " + key
	return []model.Comment{{Content: &body, CreatedUser: model.User{Name: "alice"}}}, nil
}

type testLinker struct{}

func (testLinker) IssueURL(key string) string { return "https://acme.backlog.com/view/" + key }

func newTestModel(t *testing.T, n int, opts ...nav.Option) (Model, *store.IssueStore, *fakeFetcher) {
	t.Helper()
	f := &fakeFetcher{}
	s := store.New(f)
	issues := make([]model.Issue, n)
	for i := range issues {
		issues[i] = model.Issue{
			ID:       i + 1,
			IssueKey: fmt.Sprintf("PROJ-%d", i+1),
			Summary:  fmt.Sprintf("Issue number %d", i+1),
			Status:   model.Status{ID: 1, Name: "Open", Color: "#ed8077"},
		}
	}
	s.Load(issues)
	m := New(s, nav.New(s, opts...))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), s, f
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func selectedIndex(s *store.IssueStore) int {
	i, ok := s.List().Index()
	if !ok {
		return -1
	}
	return i
}

func TestModel_MoveDownLoadsComments(t *testing.T) {
	m, s, f := newTestModel(t, 3)

	m, _ = send(t, m, keyMsg("j"))

	if got := selectedIndex(s); got != 0 {
		t.Fatalf("selected = %d, want 0", got)
	}
	if len(f.calls) != 1 || f.calls[0] != "PROJ-1" {
		t.Errorf("fetch calls = %v, want [PROJ-1]", f.calls)
	}

	view := m.View()
	for _, want := range []string{"Issue PROJ-1", "Comments (1)", "alice", "1 loaded"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ArrowKeysWrap(t *testing.T) {
	m, s, f := newTestModel(t, 3)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := selectedIndex(s); got != 0 {
		t.Fatalf("up from no selection: selected = %d, want 0", got)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := selectedIndex(s); got != 2 {
		t.Fatalf("up from first: selected = %d, want 2", got)
	}
	_, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := selectedIndex(s); got != 0 {
		t.Fatalf("down from last: selected = %d, want 0", got)
	}

	// PROJ-1 was visited twice but fetched once.
	if strings.Join(f.calls, ",") != "PROJ-1,PROJ-3" {
		t.Errorf("fetch calls = %v", f.calls)
	}
}

func TestModel_ClearSelection(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyMsg("h"), {Type: tea.KeyLeft}, {Type: tea.KeyEsc}} {
		t.Run(msg.String(), func(t *testing.T) {
			m, s, _ := newTestModel(t, 2)
			m, _ = send(t, m, keyMsg("j"))
			m, _ = send(t, m, msg)

			if _, ok := s.SelectedIssue(); ok {
				t.Error("selection should be cleared")
			}
			if !strings.Contains(m.View(), "No issue selected.") {
				t.Error("detail pane should show the empty placeholder")
			}
		})
	}
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyCtrlC}} {
		m, _, _ := newTestModel(t, 1)
		_, cmd := send(t, m, msg)
		if cmd == nil {
			t.Fatalf("%s: expected a command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestModel_IgnoresUnboundKeys(t *testing.T) {
	m, s, f := newTestModel(t, 2)
	for _, k := range []string{"x", "1", " ", "J"} {
		var cmd tea.Cmd
		m, cmd = send(t, m, keyMsg(k))
		if cmd != nil {
			t.Errorf("key %q returned a command", k)
		}
	}
	if _, ok := s.SelectedIssue(); ok {
		t.Error("unbound keys must not select")
	}
	if len(f.calls) != 0 {
		t.Errorf("unbound keys fetched: %v", f.calls)
	}
}

func TestModel_ScrollKeysDoNotMoveCursor(t *testing.T) {
	m, s, f := newTestModel(t, 2)
	m, _ = send(t, m, keyMsg("j"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	_, _ = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})

	if got := selectedIndex(s); got != 0 {
		t.Errorf("selected = %d, want 0", got)
	}
	if len(f.calls) != 1 {
		t.Errorf("fetch calls = %v", f.calls)
	}
}

func TestModel_CopyShowsMessage(t *testing.T) {
	var copied string
	m, _, _ := newTestModel(t, 2,
		nav.WithLinker(testLinker{}),
		nav.WithCopier(nav.URLHandlerFunc(func(u string) error { copied = u; return nil })),
	)

	m, _ = send(t, m, keyMsg("y"))
	if copied != "" {
		t.Fatalf("copy without selection copied %q", copied)
	}

	m, _ = send(t, m, keyMsg("j"))
	m, _ = send(t, m, keyMsg("y"))
	want := "https://acme.backlog.com/view/PROJ-1"
	if copied != want {
		t.Errorf("copied = %q, want %q", copied, want)
	}
	if !strings.Contains(m.View(), "copied "+want) {
		t.Error("status bar should report the copied URL")
	}
}

func TestModel_EmptyStore(t *testing.T) {
	m, s, f := newTestModel(t, 0)
	m, _ = send(t, m, keyMsg("j"))
	m, _ = send(t, m, keyMsg("k"))

	if _, ok := s.SelectedIssue(); ok {
		t.Error("empty store cannot have a selection")
	}
	if len(f.calls) != 0 {
		t.Errorf("fetch calls = %v", f.calls)
	}
	if !strings.Contains(m.View(), "No issues match") {
		t.Error("empty list placeholder missing")
	}
}

func TestModel_ListScrollsWithCursor(t *testing.T) {
	m, s, _ := newTestModel(t, 50)
	for i := 0; i < 45; i++ {
		m, _ = send(t, m, keyMsg("j"))
	}
	if got := selectedIndex(s); got != 44 {
		t.Fatalf("selected = %d, want 44", got)
	}
	if !strings.Contains(m.View(), "PROJ-45: Issue number 45") {
		t.Error("selected row should be visible after scrolling")
	}
	if strings.Contains(m.View(), "PROJ-1: Issue number 1 ") {
		t.Error("first row should have scrolled off")
	}
}

func TestModel_NarrowTerminalStacksPanes(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	if !m.layout.vertical {
		t.Error("80 columns should stack panes vertically")
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 30})
	if m.layout.vertical {
		t.Error("140 columns should split horizontally")
	}
}

func TestKeyMap_Action(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want nav.Action
	}{
		{keyMsg("q"), nav.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, nav.ActionQuit},
		{keyMsg("j"), nav.ActionMoveDown},
		{tea.KeyMsg{Type: tea.KeyDown}, nav.ActionMoveDown},
		{keyMsg("k"), nav.ActionMoveUp},
		{tea.KeyMsg{Type: tea.KeyUp}, nav.ActionMoveUp},
		{keyMsg("h"), nav.ActionClearSelection},
		{tea.KeyMsg{Type: tea.KeyLeft}, nav.ActionClearSelection},
		{tea.KeyMsg{Type: tea.KeyEsc}, nav.ActionClearSelection},
		{keyMsg("o"), nav.ActionOpenBrowser},
		{keyMsg("y"), nav.ActionCopyURL},
		{keyMsg("z"), nav.ActionNone},
		{tea.KeyMsg{Type: tea.KeyPgDown}, nav.ActionNone},
	}
	for _, tt := range tests {
		if got := DefaultKeyMap.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%s) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestComputeLayout(t *testing.T) {
	wide := computeLayout(120, 40)
	if wide.vertical {
		t.Error("120 columns should not stack")
	}
	if got := wide.listWidth + wide.detailWidth + 2*borderSize; got != 120 {
		t.Errorf("horizontal widths sum to %d, want 120", got)
	}
	if wide.listHeight != 40-chromeHeight-borderSize {
		t.Errorf("listHeight = %d", wide.listHeight)
	}

	narrow := computeLayout(80, 24)
	if !narrow.vertical {
		t.Error("80 columns should stack")
	}
	if got := narrow.listHeight + narrow.detailHeight + 2*borderSize; got != 24-chromeHeight {
		t.Errorf("vertical heights sum to %d, want %d", got, 24-chromeHeight)
	}

	tiny := computeLayout(5, 3)
	if tiny.listWidth < MinPaneWidth || tiny.listHeight < MinContentHeight {
		t.Errorf("tiny layout below minimums: %+v", tiny)
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		name                     string
		offset, cursor, total, h int
		wantStart, wantEnd       int
	}{
		{"fits", 0, 2, 5, 10, 0, 5},
		{"no selection", 0, -1, 20, 5, 0, 5},
		{"cursor below window", 0, 7, 20, 5, 3, 8},
		{"cursor above window", 10, 4, 20, 5, 4, 9},
		{"cursor inside window", 3, 5, 20, 5, 3, 8},
		{"offset past end", 18, 19, 20, 5, 15, 20},
		{"empty", 0, -1, 0, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleWindow(tt.offset, tt.cursor, tt.total, tt.h)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("visibleWindow = [%d,%d), want [%d,%d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestRenderRow_FillsWidth(t *testing.T) {
	issue := model.Issue{
		IssueKey: "PROJ-12",
		Summary:  "A rather long summary that will not fit in a narrow list pane at all",
		Status:   model.Status{Name: "In Progress", Color: "#4488c5"},
		Assignee: &model.User{Name: "bob"},
	}
	for _, width := range []int{12, 40, 59, 60, 90} {
		for _, selected := range []bool{false, true} {
			row := renderRow(issue, width, selected)
			if got := lipgloss.Width(row); got != width {
				t.Errorf("width %d selected=%v: row width = %d", width, selected, got)
			}
			if strings.Contains(row, "\n") {
				t.Errorf("width %d: row spans lines", width)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("日本語テキスト", 5); lipgloss.Width(got) > 5 {
		t.Errorf("wide truncate %q is %d cells", got, lipgloss.Width(got))
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestIsHexColor(t *testing.T) {
	for s, want := range map[string]bool{
		"#ed8077": true,
		"#ABCDEF": true,
		"ed8077":  false,
		"#ed807":  false,
		"#gg0000": false,
		"":        false,
	} {
		if got := isHexColor(s); got != want {
			t.Errorf("isHexColor(%q) = %v, want %v", s, got, want)
		}
	}
}
