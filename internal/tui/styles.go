package tui

import "github.com/charmbracelet/lipgloss"

// --- STYLING (using Lipgloss) ---

var (
	colorIndigo  = lipgloss.Color("#6366F1")
	colorEmerald = lipgloss.Color("#10B981")
	colorSlate   = lipgloss.Color("#64748B")
	colorDim     = lipgloss.Color("#475569")
	colorRed     = lipgloss.Color("#F87171")

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")).Padding(0, 1)
	styleSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBD5E1"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	styleNotice   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true) // Yellow
	styleTabOn    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorIndigo).Padding(0, 2)
	styleTabOff   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5E1")).Background(lipgloss.Color("#1E293B")).Padding(0, 2)
	styleChipOff  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5E1")).Background(lipgloss.Color("#334155")).Padding(0, 1)
	styleChipCur  = lipgloss.NewStyle().Underline(true)
	styleCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleScoreBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSlate).Padding(0, 4).Align(lipgloss.Center)
	styleScore    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	styleButton   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorIndigo).Padding(0, 3)
	styleButtonNo = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Background(lipgloss.Color("#334155")).Padding(0, 3)
	styleDialog   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorRed).Padding(1, 2)
	stylePanel    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(0, 1)

	// Chip colours differ per mode, as in the two filter panels.
	styleChipSearch = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(colorIndigo).Padding(0, 1)
	styleChipRandom = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(colorEmerald).Padding(0, 1)
)
