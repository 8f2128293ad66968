// Package store provides the SQLite-backed generation cache of jumpgen.
//
// Every `jumpgen generate --cache` invocation opens a run and records, per
// .jump source, what was generated from it:
//   - Runs: one row per invocation, identified by a UUIDv7
//   - Outputs: the last generated file of each source, with the
//     fingerprint of its statement graph, the hash of the configuration
//     and the hash of the code written
//
// A source whose fingerprint and configuration hash match its recorded
// output, and whose generated file still hashes to the recorded value, is
// left untouched.
//
// # Ordering
//
// Runs are ordered by seq INTEGER, never by timestamps. Queries listing
// outputs order by source path.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
