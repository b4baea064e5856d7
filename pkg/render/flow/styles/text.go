package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

const (
	fontSizeMax   = 13.0
	fontSizeMin   = 8.0
	lineSpacing   = 1.15
	fontCharWidth = 0.58
	boldWidening  = 1.1
	textPadding   = 6.0

	// outcomeLabelGap separates an outcome box from the label beside it.
	outcomeLabelGap = 8.0
)

// FontSize returns the label font size that fits all lines inside the box,
// bounded to [8, 13].
func FontSize(n Node) float64 {
	lines := max(1, len(n.Lines))
	longest := 1
	for _, l := range n.Lines {
		longest = max(longest, len([]rune(l)))
	}
	byHeight := (n.H - textPadding) / (float64(lines) * lineSpacing)
	byWidth := (n.W - 2*textPadding) / (float64(longest) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byHeight, byWidth))
}

// TextWidth estimates the advance width of s at fontSize.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * fontCharWidth
}

// labelLines are the lines drawn for n. Outcome labels carry the count.
func labelLines(n Node) []string {
	if !n.Border || n.Count == nil {
		return n.Lines
	}
	return append(n.Lines[:len(n.Lines):len(n.Lines)], FormatCount(*n.Count))
}

// LabelRight returns the rightmost x a node covers: the box edge, or for
// outcome nodes the end of the bold label drawn beside the box.
func LabelRight(n Node) float64 {
	right := n.X + n.W
	if !n.Border {
		return right
	}
	size := FontSize(n)
	widest := 0.0
	for _, l := range labelLines(n) {
		widest = max(widest, TextWidth(l, size)*boldWidening)
	}
	return right + outcomeLabelGap + widest
}

// LineOffsets returns the baseline y offset of each label line relative to
// the vertical center, so that the block of lines is centered.
func LineOffsets(count int, fontSize float64) []float64 {
	out := make([]float64, count)
	step := fontSize * lineSpacing
	first := -step*float64(count-1)/2 + fontSize*0.35
	for i := range out {
		out[i] = first + float64(i)*step
	}
	return out
}

// FormatCount renders a count with thousands separators, e.g. "n = 1,204".
func FormatCount(c int) string {
	s := strconv.Itoa(abs(c))
	var b []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, s[i])
	}
	if c < 0 {
		return "n = -" + string(b)
	}
	return "n = " + string(b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func writeLines(buf *bytes.Buffer, x, cy, fontSize float64, lines []string) {
	offsets := LineOffsets(len(lines), fontSize)
	for i, line := range lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, x, cy+offsets[i], EscapeXML(line))
	}
}
