package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tagdeck-go/internal/game"
)

const (
	cardWidth  = 22
	cardHeight = 8
)

// cardTier is the colour scheme of a card face.
type cardTier struct {
	border lipgloss.Color
	title  lipgloss.Color
	stars  lipgloss.Color
}

var (
	tierDelete  = cardTier{border: lipgloss.Color("#DC2626"), title: lipgloss.Color("#FEE2E2")}
	tierDefault = cardTier{border: colorSlate, title: lipgloss.Color("#F1F5F9"), stars: lipgloss.Color("#94A3B8")}
)

func tierFor(rating int) cardTier {
	switch rating {
	case 5:
		return cardTier{border: lipgloss.Color("#F59E0B"), title: lipgloss.Color("#FFFFFF"), stars: lipgloss.Color("#FCD34D")}
	case 4:
		return cardTier{border: lipgloss.Color("#A855F7"), title: lipgloss.Color("#FFFFFF"), stars: lipgloss.Color("#D8B4FE")}
	case 3:
		return cardTier{border: lipgloss.Color("#3B82F6"), title: lipgloss.Color("#FFFFFF"), stars: lipgloss.Color("#93C5FD")}
	case 2:
		return cardTier{border: lipgloss.Color("#10B981"), title: lipgloss.Color("#FFFFFF"), stars: lipgloss.Color("#6EE7B7")}
	default:
		return tierDefault
	}
}

// cardState carries the caller's view of a slot; the renderer keeps none of its own.
type cardState struct {
	revealed bool
	dimmed   bool
	picked   bool
}

// renderCard draws one slot: the back face until revealed, then the front face.
func renderCard(card game.Card, st cardState) string {
	box := lipgloss.NewStyle().
		Width(cardWidth).
		Height(cardHeight).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	var body string
	if !st.revealed {
		box = box.BorderForeground(colorDim).Align(lipgloss.Center, lipgloss.Center)
		body = lipgloss.NewStyle().Foreground(colorIndigo).Render("✦ ✧ ✦\n✧ ✦ ✧\n✦ ✧ ✦")
	} else {
		switch c := card.(type) {
		case game.DeleteCard:
			box = box.BorderForeground(tierDelete.border).Align(lipgloss.Center, lipgloss.Center)
			body = lipgloss.NewStyle().Foreground(tierDelete.title).Bold(true).Render("🗑\n削除")
		case game.RecordCard:
			tier := tierFor(c.Record.Rating)
			box = box.BorderForeground(tier.border)
			body = cardFront(c, tier)
		}
	}

	if st.picked {
		box = box.Border(lipgloss.ThickBorder())
	}
	if st.dimmed && !st.picked {
		box = box.Faint(true)
	}
	return box.Render(body)
}

func cardFront(c game.RecordCard, tier cardTier) string {
	r := c.Record
	inner := cardWidth - 2
	title := lipgloss.NewStyle().Foreground(tier.title).Bold(true)
	sub := lipgloss.NewStyle().Foreground(tier.title).Faint(true)

	points := fmt.Sprintf("+%d", game.ScoreFor(r.Rating))
	name := truncate(r.Translation, inner-lipgloss.Width(points)-1)
	gap := inner - lipgloss.Width(name) - lipgloss.Width(points)
	if gap < 1 {
		gap = 1
	}

	lines := []string{
		title.Render(name) + strings.Repeat(" ", gap) + title.Render(points),
		sub.Render(truncate(fmt.Sprintf("%s (%s)", r.Tag, r.JapaneseTag), inner)),
		styleSubtle.Render(truncate(r.GroupList(), inner)),
		"",
		stars(r.Rating, tier),
	}
	return strings.Join(lines, "\n")
}

func stars(rating int, tier cardTier) string {
	on := lipgloss.NewStyle().Foreground(tier.stars)
	off := lipgloss.NewStyle().Foreground(colorDim)
	var b strings.Builder
	for i := 0; i < 5; i++ {
		if i < rating {
			b.WriteString(on.Render("★"))
		} else {
			b.WriteString(off.Render("☆"))
		}
	}
	return b.String()
}

// truncate shortens s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width-1 {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	b.WriteString("…")
	return b.String()
}

// renderHand lays the hand out left to right with slot numbers above each card.
func renderHand(hand []game.Card, revealed []bool, active bool, picked int) string {
	cards := make([]string, len(hand))
	for i, card := range hand {
		label := styleSubtle.Render(fmt.Sprintf("[%d]", i+1))
		face := renderCard(card, cardState{
			revealed: i < len(revealed) && revealed[i],
			dimmed:   !active,
			picked:   i == picked,
		})
		cards[i] = lipgloss.JoinVertical(lipgloss.Center, label, face)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
