// Package viz renders rain frames as styled text and runs the Bubble Tea
// front end.
//
//   - [Renderer]: frame to string, heads bold bright white, trails green
//   - [Model]: Bubble Tea model driving a [rain.Engine] on a fixed tick
//
// # Key Bindings
//
//	q, Esc, Ctrl+C - Quit
//
// Resizing the terminal restarts the rain from an empty screen.
package viz
