package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8, r rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(string(r))
}

// Pad is one cell of a pad row
type Pad struct {
	Color [3]uint8
	Rune  rune
	Label string // printed under the pad, truncated to the cell width
}

// RenderPadRow renders pads side by side, with their labels on a second line
func RenderPadRow(pads []Pad, cellWidth int) string {
	var top, bottom strings.Builder
	for _, p := range pads {
		top.WriteString(RenderPad(p.Color, p.Rune))
		top.WriteString(strings.Repeat(" ", cellWidth-1))

		label := p.Label
		if len(label) > cellWidth-1 {
			label = label[:cellWidth-1]
		}
		bottom.WriteString(fmt.Sprintf("%-*s", cellWidth, label))
	}
	return strings.TrimRight(top.String(), " ") + "\n" + strings.TrimRight(bottom.String(), " ")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
