// Package store provides a SQLite-backed catalog of generation runs.
//
// Each run records:
//   - Runs: one row per generate invocation (source file, digest, counts)
//   - Cases: the fixtures the run was built from
//   - Scenarios: every generated scenario with its expected outcome
//
// # Ordering
//
// Runs are ordered by their insertion seq, never by created_at. Scenarios
// are ordered by their position in the run, which is the generation order.
// Every query carries an explicit ORDER BY.
//
// # Identity
//
// Run IDs are UUIDv7 from the configured IDGenerator. Scenario IDs are
// content-addressed (ir.ScenarioID), so the same scenario has the same ID in
// every run and can be tracked across runs with ScenarioHistory.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
