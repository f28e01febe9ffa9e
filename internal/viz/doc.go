// Package viz is the terminal host for the background effects.
//
// The package implements a full-screen TUI using the Bubble Tea framework:
//
//   - [Model]: runs one effect, with a stats panel and connection graph
//   - [Canvas]: Braille-based pixel canvas, drawn through [BrailleSurface]
//   - Theme selection with 4 built-in color schemes
//
// Each tick advances a [sim.Loop] by the real time since the previous
// tick, so debounced resizes fire on the UI goroutine. Losing terminal
// focus hides the surface and pauses the animation.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	Q     - Quit
package viz
