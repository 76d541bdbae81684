// Package history keeps a SQLite journal of reconciliation runs.
//
// Every run, including dry runs and failures, is recorded as one row holding
// the run ID, timing, detected display mode, final state and error class so
// operators can see when and why the stores last changed. The schema is
// embedded and migrated on Open.
package history
