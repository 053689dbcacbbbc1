// Package chess decodes and encodes positions, generates and applies moves and
// classifies the resulting game state. Functions take a Position by value and
// keep no package state.
package chess
