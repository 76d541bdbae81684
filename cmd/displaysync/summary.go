package main

import (
	"fmt"

	"displaysync/internal/reconcile"
)

// renderChangeSummary tabulates every value the run touched. It returns an
// empty string when the run never reached a patch step.
func renderChangeSummary(report reconcile.Report) string {
	rows := make([][]string, 0, len(report.RegistryChanges)+len(report.IniChanges))
	for _, c := range report.RegistryChanges {
		rows = append(rows, []string{"registry", c.Name, c.Old.Display(), c.New.Display(), changeStatus(c.Modified(), report.DryRun)})
	}
	for _, c := range report.IniChanges {
		rows = append(rows, []string{"ini", c.Key, c.OldValue, c.NewValue, changeStatus(c.Modified(), report.DryRun)})
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]column{
		{header: "Store"},
		{header: "Name"},
		{header: "Before", numeric: true},
		{header: "After", numeric: true},
		{header: "Status"},
	}, rows)
}

func changeStatus(modified, dryRun bool) string {
	switch {
	case !modified:
		return "unchanged"
	case dryRun:
		return "would update"
	default:
		return "updated"
	}
}

func formatResolution(width, height int) string {
	if width == 0 && height == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", width, height)
}
