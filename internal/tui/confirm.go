package tui

import "github.com/charmbracelet/lipgloss"

// confirmDialog gates an irreversible action behind an explicit yes.
type confirmDialog struct {
	title string
	body  string
	open  bool
}

func newConfirmDialog(title, body string) confirmDialog {
	return confirmDialog{title: title, body: body}
}

func (d *confirmDialog) Open() { d.open = true }
func (d *confirmDialog) Close() { d.open = false }
func (d confirmDialog) IsOpen() bool { return d.open }

func (d confirmDialog) View() string {
	if !d.open {
		return ""
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styleHeader.Render(d.title),
		"",
		d.body,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			styleButtonNo.Render("n: Cancel"), "  ", styleButton.Render("y: Reset")),
	)
	return styleDialog.Render(content)
}
