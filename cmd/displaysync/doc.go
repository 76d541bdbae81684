// Package main hosts the displaysync CLI entrypoint and command graph.
//
// Running the bare command detects the primary display and writes its index,
// resolution, colour depth and refresh rate into the configured registry key
// and INI section. Subcommands scaffold configuration, run read-only preflight
// checks, and list the run history journal.
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through flags and output formatting.
package main
