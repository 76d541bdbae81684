package display

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// WMICRefreshSource reads CurrentRefreshRate from win32_VideoController.
type WMICRefreshSource struct{}

// RefreshRate runs wmic and returns the first positive rate it reports.
func (WMICRefreshSource) RefreshRate(ctx context.Context) (int, error) {
	cmd := commandContext(ctx, "wmic", "path", "win32_VideoController", "get", "CurrentRefreshRate", "/format:csv")
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("wmic: %w", err)
	}
	return parseRefreshRateCSV(string(out))
}

// parseRefreshRateCSV reads "Node,CurrentRefreshRate" rows. Controllers that
// report nothing (inactive adapters) are skipped; 0 is returned when no row
// has a usable rate.
func parseRefreshRateCSV(out string) (int, error) {
	column := -1
	seenRow := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if column < 0 {
			for i, f := range fields {
				if strings.EqualFold(strings.TrimSpace(f), "CurrentRefreshRate") {
					column = i
				}
			}
			if column < 0 {
				return 0, errors.New("wmic output has no CurrentRefreshRate column")
			}
			continue
		}
		if column >= len(fields) {
			continue
		}
		seenRow = true
		value := strings.TrimSpace(fields[column])
		if value == "" {
			continue
		}
		rate, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parse refresh rate %q: %w", value, err)
		}
		if rate > 0 {
			return rate, nil
		}
	}
	if column < 0 {
		return 0, errors.New("wmic returned no output")
	}
	if !seenRow {
		return 0, errors.New("wmic reported no video controllers")
	}
	return 0, nil
}
