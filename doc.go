// Package inkwell renders a tree of box and text nodes, laid out with a
// flexbox model, into ANSI-styled terminal frames.
//
// A Renderer owns the node tree, its layout engine and the static region
// tracker. Callers mutate the tree through the mutation API (Create,
// AppendChild, InsertBefore, RemoveChild, SetStyle, SetAttribute, SetText)
// and then call Commit, which produces at most one static frame and exactly
// one dynamic frame. A Session drives a Renderer from keyboard input and
// node-owned timers, and a FocusNavigator tracks which component receives
// input.
package inkwell
