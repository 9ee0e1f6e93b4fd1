// Package viz provides terminal visualization for running automata.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps an engine on a timer and scrolls the most recent
//     generations through the terminal
//   - [Canvas]: Braille canvas packing 2x4 cells per character, for
//     histories wider than the terminal
//   - Theme selection with 4 built-in palettes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Restart from the initial generation
//	T     - Cycle themes
//	+/-   - Faster/slower
//	Q     - Quit
package viz
