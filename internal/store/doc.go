// Package store provides the SQLite-backed scene catalog.
//
// The catalog holds:
//   - Scenes: nested configurations keyed by their content hash
//     (ir.SceneID), so storing the same scene twice is a no-op
//   - Runs: simulation results recorded against a scene
//
// # Ordering
//
// Every record carries seq, a logical clock assigned on insert. List
// queries order by seq ASC, id ASC COLLATE BINARY, so results never depend
// on wall time or insertion races.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Runs must reference a stored scene
package store
