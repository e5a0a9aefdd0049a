// Package types defines the measurement categories, conversion records,
// configuration, the HistoryLog interface, and the standard errors for the
// measures unit-conversion engine.
//
// The conversion engine itself lives in pkg/units; this package holds only
// the shapes shared between the engine, the history backend, and the CLI.
package types
