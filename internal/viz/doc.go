// Package viz runs a particle field in the terminal.
//
// The field draws onto a [Surface] backed by a Braille [Canvas] (2x4 dots
// per cell), and a Bubble Tea program drives its frame queue. Mouse motion
// over the canvas becomes pointer input for the field.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Re-seed particles
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
