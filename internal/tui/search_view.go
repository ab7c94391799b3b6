package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"tagdeck-go/internal/search"
	"tagdeck-go/internal/selection"
	"tagdeck-go/internal/tags"
)

const defaultTableHeight = 15

// searchView is the search mode: text filter, group chips, result table.
type searchView struct {
	keys    keyMap
	records []tags.Record
	limit   int

	input  textinput.Model
	groups *selection.Set
	picker *groupPicker
	table  table.Model
	result search.Result
}

func newSearchView(records []tags.Record, labels []string, excluded []string, limit int, keys keyMap) *searchView {
	ti := textinput.New()
	ti.Placeholder = "日本語でタグを検索..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "> "

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "trans", Width: 24},
			{Title: "tag", Width: 28},
			{Title: "tagGroup", Width: 22},
			{Title: "Rating", Width: 6},
			{Title: "Count", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Foreground(lipgloss.Color("#CBD5E1")).BorderForeground(lipgloss.Color("#334155")).BorderBottom(true)
	ts.Selected = ts.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1E293B"))
	tbl.SetStyles(ts)

	groups := selection.New(labels, excluded...)
	v := &searchView{
		keys:    keys,
		records: records,
		limit:   limit,
		input:   ti,
		groups:  groups,
		picker:  newGroupPicker(groups, styleChipSearch),
		table:   tbl,
	}
	v.applyFilter()
	return v
}

func (v *searchView) applyFilter() {
	v.result = search.Filter(v.records, v.input.Value(), v.groups, v.limit)

	rows := make([]table.Row, len(v.result.Rows))
	for i, r := range v.result.Rows {
		rows[i] = table.Row{
			r.Translation,
			r.Tag,
			r.GroupList(),
			strconv.Itoa(r.Rating),
			humanize.Comma(int64(r.Count)),
		}
	}
	v.table.SetRows(rows)
	v.table.GotoTop()
}

func (v *searchView) setHeight(h int) {
	if h < 3 {
		h = 3
	}
	v.table.SetHeight(h)
}

func (v *searchView) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, v.keys.ChipNext):
			v.picker.toggle(1)
			v.applyFilter()
			return nil
		case key.Matches(msg, v.keys.ChipPrev):
			v.picker.toggle(-1)
			v.applyFilter()
			return nil
		case key.Matches(msg, v.keys.ChipLeft):
			v.picker.move(-1)
			return nil
		case key.Matches(msg, v.keys.ChipRight):
			v.picker.move(1)
			return nil
		case key.Matches(msg, v.keys.SelectAll):
			v.groups.SelectAll()
			v.applyFilter()
			return nil
		case key.Matches(msg, v.keys.DeselectAll):
			v.groups.DeselectAll()
			v.applyFilter()
			return nil
		case key.Matches(msg, v.keys.ScrollUp):
			v.table.MoveUp(1)
			return nil
		case key.Matches(msg, v.keys.ScrollDown):
			v.table.MoveDown(1)
			return nil
		case key.Matches(msg, v.keys.PageUp):
			v.table.MoveUp(v.table.Height())
			return nil
		case key.Matches(msg, v.keys.PageDown):
			v.table.MoveDown(v.table.Height())
			return nil
		}
	}

	// Everything else goes to the text input.
	oldTerm := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != oldTerm {
		v.applyFilter()
	}
	return cmd
}

func (v *searchView) View(width int) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Filters"))
	b.WriteString(styleSubtle.Render("   ctrl+a: すべて選択 · ctrl+d: すべて解除"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(v.picker.view(width))
	b.WriteString("\n\n")

	if v.result.Total == 0 {
		b.WriteString(styleSubtle.Render("No tags match your filter."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.View())
		b.WriteString("\n")
	}

	if v.result.Truncated {
		b.WriteString(styleSubtle.Render(fmt.Sprintf("Showing first %d results...", v.limit)))
	} else {
		b.WriteString(styleSubtle.Render(fmt.Sprintf("Showing %d of %d tags", v.result.Total, len(v.records))))
	}
	return b.String()
}
