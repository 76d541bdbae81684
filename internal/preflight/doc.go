// Package preflight provides read-only readiness checks for the stores and
// paths displaysync touches.
//
// The CLI "displaysync check" command runs RunAll to show, before any real
// run, whether the registry key and its values exist, whether the INI file
// has the target section and keys, and whether the log and history locations
// are writable. Nothing is ever modified.
package preflight
