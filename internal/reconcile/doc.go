// Package reconcile runs one display synchronization pass.
//
// Runner walks a fixed sequence of states: detect the primary display,
// validate and patch the registry key, then validate and patch the INI
// section. Each store is fully validated before it is touched, a fatal
// condition moves the run to StateFailed without retrying, and the registry
// is never rolled back when the INI step fails. A dry run performs every
// lookup and reports the writes it would make without persisting them.
package reconcile
