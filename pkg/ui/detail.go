package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/backlog_viewer/pkg/model"
)

// markdownRenderer renders descriptions and comments, rebuilding the
// glamour renderer only when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

func (r *markdownRenderer) render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.renderer, r.width = tr, width
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// renderDetail builds the detail pane content for issue. Comments are
// listed only when at least one was loaded, so a failed load and an
// empty thread look the same.
func renderDetail(md *markdownRenderer, issue model.Issue, width int) string {
	var b strings.Builder

	b.WriteString(ColKeyStyle.Render(issue.IssueKey))
	b.WriteString("  ")
	b.WriteString(RenderStatusBadge(issue.Status.Name, issue.Status.Color))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Inherit(SummaryStyle).Render(singleLine(issue.Summary)))
	b.WriteString("\n")

	meta := "unassigned"
	if name := issue.AssigneeName(); name != "" {
		meta = "@" + name
	}
	if issue.Updated != "" {
		meta += " • updated " + issue.Updated
	}
	b.WriteString(MetaStyle.Render(truncate(meta, width)))
	b.WriteString("\n")
	b.WriteString(RenderDivider(width))
	b.WriteString("\n")

	if desc := md.render(issue.Description, width); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}

	if len(issue.Comments) > 0 {
		b.WriteString("\n")
		b.WriteString(PanelTitleStyle.Render(fmt.Sprintf("Comments (%d)", len(issue.Comments))))
		b.WriteString("\n")
		for _, c := range issue.Comments {
			b.WriteString(RenderDivider(width))
			b.WriteString("\n")
			header := CommentAuthorStyle.Render(c.CreatedUser.Name)
			if c.Created != "" {
				header += " " + MetaStyle.Render(c.Created)
			}
			b.WriteString(header)
			b.WriteString("\n")
			b.WriteString(md.render(c.Text(), width))
			b.WriteString("\n")
		}
	}

	return b.String()
}
