// Package cli provides the interactive polymap command-line client.
//
// It wires the session manager and the polygon editor behind a REPL. Typical
// flow: register, log in, start a polygon, click points in, finish it, and
// later arm delete mode to remove polygons by number or by coordinate.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command set.
package cli
