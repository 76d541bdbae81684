// Package display detects the primary monitor's mode.
//
// Probe combines an Enumerator, which lists the outputs attached to the
// desktop in OS order, with a RefreshSource that reports the active refresh
// rate from video controller information. A missing or zero refresh rate is
// replaced by a configured default and logged as a warning; a missing primary
// output is fatal.
package display
