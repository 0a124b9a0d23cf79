package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kraitsura/backlog_viewer/pkg/model"
)

const (
	ellipsis      = "…"
	assigneeWidth = 14
)

// truncate cuts s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// padRight pads s with spaces to exactly width cells, truncating if needed.
func padRight(s string, width int) string {
	s = truncate(s, width)
	return runewidth.FillRight(s, width)
}

// issueTitle is the "KEY: summary" label used everywhere an issue is
// listed.
func issueTitle(issue model.Issue) string {
	return issue.IssueKey + ": " + singleLine(issue.Summary)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// renderRow renders one list row into exactly width cells.
func renderRow(issue model.Issue, width int, selected bool) string {
	badge := RenderStatusBadge(issue.Status.Name, issue.Status.Color)
	badgeWidth := lipgloss.Width(badge)

	assignee := ""
	aw := 0
	if name := issue.AssigneeName(); name != "" && width >= 60 {
		aw = assigneeWidth
		assignee = ColAssigneeStyle.Render(padRight("@"+name, aw))
	}

	titleWidth := width - badgeWidth - aw - 2
	if titleWidth < 8 {
		// Too narrow for columns, show the title alone.
		return rowStyle(selected).Render(padRight(issueTitle(issue), width))
	}

	title := padRight(issueTitle(issue), titleWidth)
	switch {
	case selected:
		title = SelectedItemStyle.Render(title)
	case strings.HasPrefix(title, issue.IssueKey):
		title = ColKeyStyle.Render(issue.IssueKey) + ItemStyle.Render(strings.TrimPrefix(title, issue.IssueKey))
	default:
		title = ItemStyle.Render(title)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, title, " ", badge, " ", assignee)
}

func rowStyle(selected bool) lipgloss.Style {
	if selected {
		return SelectedItemStyle
	}
	return ItemStyle
}

// visibleWindow returns the [start, end) range of rows to draw so the
// cursor stays on screen. offset is the previous start.
func visibleWindow(offset, cursor, total, height int) (int, int) {
	if height <= 0 || total == 0 {
		return 0, 0
	}
	if height >= total {
		return 0, total
	}
	if cursor >= 0 {
		if cursor < offset {
			offset = cursor
		}
		if cursor >= offset+height {
			offset = cursor - height + 1
		}
	}
	if offset > total-height {
		offset = total - height
	}
	if offset < 0 {
		offset = 0
	}
	return offset, offset + height
}
