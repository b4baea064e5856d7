// Package fonts names the CSS font stacks used in rendered SVG.
//
// Nothing is embedded: SVG text falls back through each stack to whatever
// the viewer, rsvg-convert or Graphviz has installed.
package fonts

import "strings"

// Sans is the default stack for labels and legends.
const Sans = "Helvetica,Arial,sans-serif"

// Script is the stack for the hand-drawn style. xkcd Script is used when
// installed; the rest are common handwriting faces.
const Script = "'xkcd Script','Comic Neue','Comic Sans MS','Bradley Hand','Segoe Script',cursive"

// Primary returns the first family of a stack without quotes, e.g. for
// Graphviz, which accepts a single font name.
func Primary(stack string) string {
	first, _, _ := strings.Cut(stack, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}
