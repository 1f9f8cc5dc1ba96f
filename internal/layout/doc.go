// Package layout implements a pure-Go flexbox layout engine for terminal UIs.
//
// Nodes live in an arena owned by an [Engine] and are addressed by integer
// [Handle]s, so the host tree never holds pointers into the engine. The
// engine supports row/column (and reversed) directions, wrapping, justify and
// align modes, grow/shrink/basis, padding, margin, border, row/column gaps,
// min/max constraints, percentage and fixed dimensions, display:none,
// absolute positioning and measure callbacks for leaf content.
//
// The main entry point is [Engine.Calculate], which resolves the tree rooted
// at a handle and stores float geometry readable through [Engine.Layout].
package layout
