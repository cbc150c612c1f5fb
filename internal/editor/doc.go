// Package editor implements the polygon editing state machine bound to the
// account of the active session.
//
// The editor is in exactly one of three states: Idle, Drawing (a draft
// polygon is being clicked in) or DeleteArmed (the next selected polygon is
// removed). Every committed or deleted polygon is written back to the record
// store before the call returns. An Editor is not safe for concurrent use.
package editor
