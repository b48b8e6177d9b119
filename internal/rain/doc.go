// Package rain implements the digital rain animation engine.
//
// The engine owns a set of falling glyph streams and advances them one tick
// at a time into a [Frame]:
//
//   - [Engine]: stream collection, spawn, resize, advance and cleanup
//   - [Stream]: one falling trail with a fixed column, length and speed
//   - [Frame]: the per-tick character grid plus the set of stream heads
//   - [Glyph]: deterministic glyph for a (stream, column, row) triple
//
// # Tick order
//
// A caller drives one tick as Spawn, then any Resize caused by input, then
// Advance, draws the returned frame, and finally Cleanup:
//
//	eng := rain.New(cols, rows)
//	eng.Spawn()
//	frame := eng.Advance()
//	draw(frame)
//	eng.Cleanup()
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The frame returned by Advance is
// reused by the next Advance call.
package rain
