// Package game implements a falling-block puzzle engine: a fixed 10×20 grid
// of settled blocks, a catalog of seven pieces, movement and rotation with
// wall kicks, line sweeps with level-scaled scoring, and a frame-driven loop
// with pause, game over and restart.
//
// The engine performs no I/O. Frames are handed to a Renderer and the high
// score goes through a Storage; both are supplied by the caller.
package game
