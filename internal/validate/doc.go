// Package validate performs the existence checks that must pass before a
// store is modified. Each check is read-only and reports absence through
// *failures.Missing naming the exact registry path, value, INI file, section
// or key.
package validate
