// Package deps reports whether the external commands displaysync shells out
// to are installed.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Requirement is an external command and where to look for it.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// Fallbacks are absolute paths tried when Command is not on PATH.
	Fallbacks []string
}

// Status reports the availability of a dependency. Detail holds the resolved
// path when available and the reason otherwise.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// RefreshRateRequirement describes the command used to read the active refresh rate.
func RefreshRateRequirement() Requirement {
	req := Requirement{
		Name:        "wmic",
		Command:     "wmic",
		Description: "Reports the active refresh rate; the configured default is used without it",
		Optional:    true,
	}
	if runtime.GOOS == "windows" {
		if root := os.Getenv("SystemRoot"); root != "" {
			req.Fallbacks = []string{filepath.Join(root, "System32", "wbem", "wmic.exe")}
		}
	}
	return req
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		results = append(results, check(req))
	}
	return results
}

func check(req Requirement) Status {
	status := Status{Requirement: req}
	if req.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	if path, err := exec.LookPath(req.Command); err == nil {
		status.Available = true
		status.Detail = path
		return status
	}
	for _, candidate := range req.Fallbacks {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			status.Available = true
			status.Detail = candidate
			return status
		}
	}
	status.Detail = fmt.Sprintf("binary %q not found", req.Command)
	return status
}
