// Package tui implements the terminal frontend: a Bubble Tea program that
// renders the generation session and forwards key presses to it.
package tui
