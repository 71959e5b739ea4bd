package ui

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"igposts/pkg/runner"
)

// RenderSummary prints a per-profile table followed by the output locations
func (c *Console) RenderSummary(summary *runner.Summary) {
	if c.quiet || summary == nil {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	if c.color {
		t.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
		t.Style().Color.Footer = text.Colors{text.FgYellow}
	}

	t.AppendHeader(table.Row{"Username", "Posts", "Source", "Status", "Time"})
	for _, p := range summary.Profiles {
		status := "ok"
		if p.Err != nil {
			status = "failed: " + p.Err.Error()
		}
		source := string(p.Source)
		if source == "" {
			source = "-"
		}
		t.AppendRow(table.Row{"@" + p.Username, p.Posts, source, status, formatDuration(p.Duration)})
	}
	t.AppendFooter(table.Row{"Total", summary.Total, "", fmt.Sprintf("%d failed", summary.Failed()), formatDuration(summary.Duration)})
	t.Render()

	c.PrintInfo("Output", summary.OutputPath)
	if summary.SnapshotPath != "" {
		c.PrintInfo("Snapshot", summary.SnapshotPath)
	}
}
