package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tagdeck-go/internal/selection"
)

// groupPicker is the strip of group chips with a cursor, one per view.
type groupPicker struct {
	set    *selection.Set
	labels []string
	cursor int
	on     lipgloss.Style
}

func newGroupPicker(set *selection.Set, on lipgloss.Style) *groupPicker {
	return &groupPicker{set: set, labels: set.Labels(), on: on}
}

func (p *groupPicker) move(delta int) {
	if len(p.labels) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.labels)) % len(p.labels)
}

func (p *groupPicker) current() string {
	if len(p.labels) == 0 {
		return ""
	}
	return p.labels[p.cursor]
}

// toggle flips the chip under the cursor, then moves by step.
func (p *groupPicker) toggle(step int) {
	if len(p.labels) == 0 {
		return
	}
	p.set.Toggle(p.current())
	p.move(step)
}

func (p *groupPicker) view(width int) string {
	if len(p.labels) == 0 {
		return styleSubtle.Render("No groups in the dataset.")
	}
	if width <= 0 {
		width = 80
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for i, label := range p.labels {
		style := styleChipOff
		if p.set.Has(label) {
			style = p.on
		}
		if i == p.cursor {
			style = style.Inherit(styleChipCur)
		}
		chip := style.Render(label)
		if i == p.cursor {
			chip = styleCursor.Render(">") + chip
		} else {
			chip = " " + chip
		}

		w := lipgloss.Width(chip)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}
		line.WriteString(chip)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return strings.Join(lines, "\n")
}
