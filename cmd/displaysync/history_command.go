package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"displaysync/internal/history"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "History journal is disabled (history.enabled = false)")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		mode := "apply"
		if e.DryRun {
			mode = "dry run"
		}
		refresh := "-"
		if e.RefreshRate > 0 {
			refresh = strconv.Itoa(e.RefreshRate) + " Hz"
			if e.RefreshDefaulted {
				refresh += " (default)"
			}
		}
		outcome := e.State
		if e.FailedAt != "" {
			outcome = fmt.Sprintf("%s at %s", e.State, e.FailedAt)
		}
		rows = append(rows, []string{
			e.StartedAt.Local().Format(historyTimeLayout),
			mode,
			outcome,
			formatResolution(e.Width, e.Height),
			refresh,
			strconv.Itoa(e.RegistryChanges),
			strconv.Itoa(e.IniChanges),
			e.ErrorMessage,
		})
	}
	return renderTable([]column{
		{header: "Started"},
		{header: "Mode"},
		{header: "State"},
		{header: "Resolution", numeric: true},
		{header: "Refresh", numeric: true},
		{header: "Registry", numeric: true},
		{header: "INI", numeric: true},
		{header: "Error"},
	}, rows)
}
