// Package debug is the renderer's trace log. It writes structured slog
// records to a file named by INKWELL_DEBUG or passed to Init, and discards
// everything when neither is set.
package debug
