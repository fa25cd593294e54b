// Package terminal owns the tcell screen lifecycle: color-mode selection,
// construction, emergency reset and crash-safe goroutines.
package terminal
