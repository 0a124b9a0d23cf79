package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kraitsura/backlog_viewer/pkg/model"
)

const (
	defaultTableWidth = 120
	minSummaryWidth   = 20
)

// writeTable prints issues as aligned plain-text columns, for pipes and
// scripts. Widths are measured in terminal cells so Japanese summaries
// line up.
func writeTable(w io.Writer, issues []model.Issue, width int) error {
	headers := []string{"KEY", "STATUS", "ASSIGNEE", "UPDATED"}
	cols := make([]int, len(headers))
	for i, h := range headers {
		cols[i] = runewidth.StringWidth(h)
	}

	rows := make([][]string, len(issues))
	for i, issue := range issues {
		rows[i] = []string{issue.IssueKey, issue.Status.Name, issue.AssigneeName(), issue.Updated}
		for c, cell := range rows[i] {
			if cw := runewidth.StringWidth(cell); cw > cols[c] {
				cols[c] = cw
			}
		}
	}

	summaryWidth := width
	for _, c := range cols {
		summaryWidth -= c + 2
	}
	if summaryWidth < minSummaryWidth {
		summaryWidth = minSummaryWidth
	}

	line := func(cells []string, summary string) string {
		var b strings.Builder
		for i, cell := range cells {
			b.WriteString(runewidth.FillRight(cell, cols[i]))
			b.WriteString("  ")
		}
		b.WriteString(runewidth.Truncate(summary, summaryWidth, "…"))
		return strings.TrimRight(b.String(), " ")
	}

	if _, err := fmt.Fprintln(w, line(headers, "SUMMARY")); err != nil {
		return err
	}
	for i, issue := range issues {
		summary := strings.Join(strings.Fields(issue.Summary), " ")
		if _, err := fmt.Fprintln(w, line(rows[i], summary)); err != nil {
			return err
		}
	}
	return nil
}
