// Package testutil provides deterministic stand-ins for the external
// simulation engine, for tests of the runner and the command line.
package testutil
