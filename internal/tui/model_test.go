package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagdeck-go/internal/game"
	"tagdeck-go/internal/ledger"
	"tagdeck-go/internal/tags"
)

type fakeLoader struct {
	records []tags.Record
	err     error
	source  string
}

func (f *fakeLoader) Load(_ context.Context, source string) ([]tags.Record, error) {
	f.source = source
	return f.records, f.err
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and any batched commands and returns the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func feed(m *Model, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func ratedRecords(n int, rating int, group string) []tags.Record {
	out := make([]tags.Record, n)
	for i := range out {
		out[i] = tags.Record{
			Tag:         fmt.Sprintf("tag_%d", i),
			Translation: fmt.Sprintf("タグ%d", i),
			JapaneseTag: fmt.Sprintf("たぐ%d", i),
			Count:       1000 + i,
			Groups:      []string{group},
			Rating:      rating,
		}
	}
	return out
}

func newTestModel(t *testing.T, records []tags.Record, opts ...func(*Options)) (*Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Now()}
	o := Options{
		Source:         "tags.csv",
		Loader:         &fakeLoader{records: records},
		RandomExcluded: []string{"キャラクター", "版権"},
		ScoreAnimation: 600 * time.Millisecond,
		GameOptions:    []game.Option{game.WithRand(rand.New(rand.NewSource(7))), game.WithDeleteChance(0)},
		Now:            clock.now,
	}
	for _, fn := range opts {
		fn(&o)
	}
	m := New(o)
	m.Update(dataLoadedMsg{status: tags.Loaded(records)})
	require.Equal(t, tags.PhaseLoaded, m.Status().Phase)
	return m, clock
}

func TestLoadingAndFailedViews(t *testing.T) {
	loader := &fakeLoader{err: errors.New("failed to fetch CSV: Not Found")}
	m := New(Options{Source: "https://example.com/tags.csv", Loader: loader})
	assert.Contains(t, m.View(), "Loading data...")

	msg := m.loadCmd()()
	assert.Equal(t, "https://example.com/tags.csv", loader.source)
	m.Update(msg)

	assert.Equal(t, tags.PhaseFailed, m.Status().Phase)
	assert.Contains(t, m.View(), "Error: failed to fetch CSV: Not Found")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestLoadCmdSucceeds(t *testing.T) {
	records := ratedRecords(3, 1, "一般")
	m := New(Options{Loader: &fakeLoader{records: records}, FetchTimeout: time.Second})
	m.Update(m.loadCmd()())
	assert.Equal(t, tags.PhaseLoaded, m.Status().Phase)
	assert.Contains(t, m.View(), "Tag Database Explorer")
}

func TestDrawRefusedWithDefaultExclusions(t *testing.T) {
	records := []tags.Record{
		{Tag: "a", Translation: "a", Groups: []string{"キャラクター"}, Rating: 1},
		{Tag: "b", Translation: "b", Groups: []string{"版権"}, Rating: 1},
		{Tag: "c", Translation: "c", Groups: []string{"一般"}, Rating: 1},
		{Tag: "d", Translation: "d", Groups: []string{"キャラクター", "一般"}, Rating: 1},
	}
	m, _ := newTestModel(t, records)
	assert.Len(t, m.game.pool, 2)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, game.StateIdle, m.game.game.State())
	assert.Empty(t, m.game.game.Hand())
	assert.Contains(t, m.View(), notEnoughTagsNotice)
}

func TestRoundFlow(t *testing.T) {
	m, clock := newTestModel(t, ratedRecords(8, 5, "一般"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, game.StateDrawn, m.game.game.State())
	assert.NotContains(t, m.View(), "Draw Cards")

	// Cards cannot be picked before they turn face up.
	m.Update(keyRunes("1"))
	assert.Equal(t, game.StateDrawn, m.game.game.State())
	assert.Zero(t, m.game.game.Score())

	feed(m, drain(cmd))
	assert.Equal(t, []bool{true, true, true, true, true}, m.game.game.Revealed())

	_, cmd = m.Update(keyRunes("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, game.StateSelected, m.game.game.State())
	assert.Equal(t, 200, m.game.game.Score())
	assert.Contains(t, m.View(), "Draw Again")

	// Second pick in the same round is ignored.
	m.Update(keyRunes("4"))
	assert.Equal(t, 200, m.game.game.Score())

	// Score animates toward the new total and lands on it.
	gen := m.game.frameGen
	clock.advance(300 * time.Millisecond)
	m.Update(scoreFrameMsg{gen: gen})
	assert.Equal(t, 100, m.game.score.Value())
	clock.advance(time.Second)
	_, cmd = m.Update(scoreFrameMsg{gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, 200, m.game.score.Value())
	assert.Contains(t, m.View(), "200")

	_, cmd = m.Update(keyRunes("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, game.StateDrawn, m.game.game.State())
}

func TestStaleTimersAreIgnored(t *testing.T) {
	m, clock := newTestModel(t, ratedRecords(8, 4, "一般"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	reveals := drain(cmd)
	feed(m, reveals)
	m.Update(keyRunes("1"))
	firstGen := m.game.frameGen

	// Reset before the first animation finishes.
	m.Update(keyRunes("r"))
	m.Update(keyRunes("y"))
	assert.NotEqual(t, firstGen, m.game.frameGen)

	clock.advance(100 * time.Millisecond)
	_, cmd = m.Update(scoreFrameMsg{gen: firstGen})
	assert.Nil(t, cmd)

	// Reveal ticks from the discarded hand do nothing.
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, reveals)
	assert.Equal(t, make([]bool, game.HandSize), m.game.game.Revealed())
}

func TestResetDialog(t *testing.T) {
	m, _ := newTestModel(t, ratedRecords(8, 3, "一般"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, drain(cmd))
	m.Update(keyRunes("2"))
	require.Equal(t, 15, m.game.game.Score())

	m.Update(keyRunes("r"))
	assert.True(t, m.game.confirm.IsOpen())
	assert.Contains(t, m.View(), "Reset Score?")

	// While the dialog is open other keys do nothing.
	m.Update(keyRunes("d"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, ModeRandom, m.Mode())
	assert.Equal(t, game.StateSelected, m.game.game.State())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.game.confirm.IsOpen())
	assert.Equal(t, 15, m.game.game.Score())
	assert.Len(t, m.game.game.Hand(), game.HandSize)

	m.Update(keyRunes("r"))
	m.Update(keyRunes("y"))
	assert.False(t, m.game.confirm.IsOpen())
	assert.Zero(t, m.game.game.Score())
	assert.Empty(t, m.game.game.Hand())
	assert.Empty(t, m.game.game.Revealed())
	assert.Equal(t, game.StateIdle, m.game.game.State())
	assert.Contains(t, m.View(), "Draw Cards")
}

func TestRandomModeGroupControls(t *testing.T) {
	records := append(ratedRecords(5, 1, "一般"), ratedRecords(5, 2, "キャラクター")...)
	m, _ := newTestModel(t, records)
	assert.Len(t, m.game.pool, 5)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Empty(t, m.game.pool)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.StateIdle, m.game.game.State())
	assert.Contains(t, m.View(), notEnoughTagsNotice)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Len(t, m.game.pool, 10)
	assert.NotContains(t, m.View(), notEnoughTagsNotice)

	// Chip cursor starts on キャラクター (first label); space toggles it.
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Len(t, m.game.pool, 5)
	assert.False(t, m.game.groups.Has("キャラクター"))

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "一般", m.game.picker.current())
}

func TestSearchMode(t *testing.T) {
	records := append(ratedRecords(3, 1, "一般"), tags.Record{
		Tag: "smile", Translation: "Smile", Groups: []string{"表情"}, Rating: 2, Count: 1234567,
	})
	m, _ := newTestModel(t, records)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, ModeSearch, m.Mode())
	assert.Equal(t, 4, m.search.result.Total)

	for _, r := range "SMI" {
		m.Update(keyRunes(string(r)))
	}
	assert.Equal(t, "SMI", m.search.input.Value())
	require.Equal(t, 1, m.search.result.Total)
	view := m.View()
	assert.Contains(t, view, "smile")
	assert.Contains(t, view, "1,234,567")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Zero(t, m.search.result.Total)
	assert.Contains(t, m.View(), "No tags match your filter.")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, 1, m.search.result.Total)

	// Typing "q" in search mode is text, not quit.
	_, cmd := m.Update(keyRunes("q"))
	assert.Equal(t, "SMIq", m.search.input.Value())
	if cmd != nil {
		assert.NotEqual(t, tea.Quit(), cmd())
	}

	// Game state is untouched by search interaction, and modes keep their own selections.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, ModeRandom, m.Mode())
	assert.Equal(t, 2, m.game.groups.Len())
}

func TestSearchModeToggleChips(t *testing.T) {
	records := append(ratedRecords(2, 1, "一般"), ratedRecords(3, 1, "表情")...)
	m, _ := newTestModel(t, records, func(o *Options) { o.StartMode = ModeSearch })
	require.Equal(t, ModeSearch, m.Mode())
	assert.Equal(t, 5, m.search.result.Total)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.search.groups.Has("一般"))
	assert.Equal(t, 3, m.search.result.Total)
	assert.Equal(t, "表情", m.search.picker.current())

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.False(t, m.search.groups.Has("表情"))
	assert.Zero(t, m.search.result.Total)
}

func TestSearchTruncationNotice(t *testing.T) {
	m, _ := newTestModel(t, ratedRecords(120, 1, "一般"), func(o *Options) { o.StartMode = ModeSearch })
	assert.True(t, m.search.result.Truncated)
	assert.Len(t, m.search.table.Rows(), 100)
	assert.Contains(t, m.View(), "Showing first 100 results...")
}

func TestRoundLedgerIntegration(t *testing.T) {
	l, err := ledger.Open(context.Background(), nil)
	require.NoError(t, err)
	defer l.Close()

	m, _ := newTestModel(t, ratedRecords(8, 4, "一般"), func(o *Options) { o.Rounds = l })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, drain(cmd))
	_, cmd = m.Update(keyRunes("5"))
	for _, msg := range drain(cmd) {
		if _, ok := msg.(ledgerStatsMsg); ok {
			m.Update(msg)
		}
	}

	assert.Equal(t, ledger.Stats{Draws: 1, Picks: 1, Points: 50, BestRating: 4}, m.game.stats)
	assert.True(t, strings.Contains(m.View(), "Rounds 1 · Picks 1"))
}

func TestBestRatingOutOfRange(t *testing.T) {
	l, err := ledger.Open(context.Background(), nil)
	require.NoError(t, err)
	defer l.Close()

	records := ratedRecords(5, 1<<62, "一般")
	m, _ := newTestModel(t, records, func(o *Options) { o.Rounds = l })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	feed(m, drain(cmd))
	_, cmd = m.Update(keyRunes("1"))
	for _, msg := range drain(cmd) {
		if _, ok := msg.(ledgerStatsMsg); ok {
			m.Update(msg)
		}
	}
	require.Equal(t, 1<<62, m.game.stats.BestRating)
	assert.Zero(t, m.game.game.Score())

	var view string
	require.NotPanics(t, func() { view = m.View() })
	assert.Contains(t, view, "Best ★★★★★")
}

func TestRatingBar(t *testing.T) {
	assert.Equal(t, "★★★☆☆", ratingBar(3))
	assert.Equal(t, "★★★★★", ratingBar(5))
	assert.Equal(t, "★★★★★", ratingBar(1<<40))
	assert.Equal(t, "☆☆☆☆☆", ratingBar(-2))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("Search")
	require.NoError(t, err)
	assert.Equal(t, ModeSearch, mode)

	mode, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeRandom, mode)

	_, err = ParseMode("arcade")
	assert.Error(t, err)
}
