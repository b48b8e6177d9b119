// Package term defines the terminal driver the animation loop talks to.
//
//   - [Driver]: alternate screen, size, bounded input polling and frame drawing
//   - [Tcell]: driver backed by a tcell screen
//   - [Headless]: driver with no terminal, for benchmarks and tests
//
// Every failure is reported as an [*Error] naming the operation.
package term
