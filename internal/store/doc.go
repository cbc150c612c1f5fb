// Package store is the durable record store holding every account and its
// polygons.
//
// # Model
//
// The store is a key/value table with a single logical key, UsersKey, whose
// value is the JSON array of models.Account. There is no partial-row update:
// callers read the full table with LoadAll, change an in-memory copy and
// write the whole table back with SaveAll.
//
// # Failure policy
//
// LoadAll never fails. A missing key, undecodable JSON or a driver error
// is logged and reported as an empty table. SaveAll returns its error so the
// session and editor layers can decide how to surface it.
//
// # Backends
//
//   - SQLiteStore: modernc.org/sqlite file (or ":memory:"), schema managed by
//     embedded goose migrations.
//   - MemoryStore: process-local, used in tests.
//
// Access is expected from a single logical actor; neither backend coordinates
// writers across processes.
package store
