// Package failures defines the error taxonomy shared by the reconciliation
// steps.
//
// Errors are tagged with one of the exported sentinel markers so the CLI and
// the history journal can classify a failed run without string matching:
// detection failures, missing structure (registry path/value, INI
// file/section/key), write failures and configuration problems. Missing
// structure is reported through the Missing type, which names the exact
// resource an operator has to fix before re-running.
package failures
