// Package viz renders stored runs in the terminal: a Braille-dot canvas for
// field snapshots and a bubbletea replay of a run's persisted streams.
package viz
