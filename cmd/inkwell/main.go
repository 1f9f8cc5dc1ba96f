// Package main provides the inkwell CLI.
//
// Usage:
//
//	inkwell render [path...]   Render YAML tree documents once
//	inkwell demo               Run a live demo (static log, spinner, focus list)
//	inkwell version            Print version information
//
// Examples:
//
//	inkwell render card.yaml          Render a single document
//	inkwell render ./docs/...         Recursively render every document
//	inkwell render --columns 40 a.yml Render at a fixed width
//	inkwell demo --color ansi256      Run the demo with 256 colors
package main

func main() {
	Execute()
}
