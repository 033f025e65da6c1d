// Package audit provides audit trail logging for administrative operations.
//
// Every operation that mutates the store (put, rm, rotate, init) is
// recorded in a store-level audit log. Retrieval is deliberately not
// audited: `get` runs on the hot path as an unprivileged service account
// that must not need write access to the store.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<store_dir>/.audit.jsonl
//
// Each entry contains:
//   - Random UUID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS username
//   - Operation name and operation-specific details (secret names, counts)
//
// Secret values are never written to the trail.
//
// # Usage
//
// Create an entry with the user pre-populated:
//
//	entry := audit.NewEntry("put")
//	entry.Secret = name
//	trail.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
