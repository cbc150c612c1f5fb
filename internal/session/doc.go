// Package session manages accounts and the single active login.
//
// The Manager reads and writes the account table through a
// store.RecordStore. Every operation re-reads the full table, mutates a copy
// and writes the whole table back, so the store never sees a partial update.
//
// Invariants kept by the Manager:
//   - tax ids are unique (Register rejects duplicates with common.ErrConflict);
//   - at most one account has Logged set (Login clears every other flag in the
//     same save).
//
// Login and Register simulate a network round trip with a configurable delay
// and are guarded by a busy flag: a second call while one is pending returns
// common.ErrBusy instead of queueing. Once started, a call always completes.
//
// Store write failures surface as common.ErrInternal; Message turns any
// returned error into the short text shown next to the form that triggered it.
package session
