// Package viz draws a running simulation in the terminal.
//
// [Model] is a Bubble Tea model that pulls states from a simulator's
// sequence on every tick and renders bodies with bounded trails on a
// braille [Canvas], next to an energy chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Zoom in/out
//	[ ]   - Halve/double steps per frame
//	C     - Clear trails
//	S     - Save the current frame as SVG
//	Q     - Quit
package viz
