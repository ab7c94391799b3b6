package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"tagdeck-go/internal/game"
	"tagdeck-go/internal/ledger"
	"tagdeck-go/internal/selection"
	"tagdeck-go/internal/tags"
	"tagdeck-go/internal/tween"
)

const notEnoughTagsNotice = "Not enough tags in the selected groups to draw a hand."

// RoundLog receives the session's round events.
type RoundLog interface {
	RecordDraw(ctx context.Context, round game.Round) error
	RecordSelection(ctx context.Context, roundID string, pick game.Pick) error
	RecordReset(ctx context.Context, scoreBefore int) error
	Stats(ctx context.Context) (ledger.Stats, error)
}

// revealMsg turns one slot of a round face up.
type revealMsg struct {
	round string
	slot  int
}

// scoreFrameMsg advances the score animation of one generation.
type scoreFrameMsg struct {
	gen uint64
}

// ledgerStatsMsg carries a refreshed session summary.
type ledgerStatsMsg struct {
	stats ledger.Stats
	err   error
}

// gameView is the random mode: score, hand, draw button, group pool.
type gameView struct {
	keys    keyMap
	logger  *zap.Logger
	rounds  RoundLog
	now     func() time.Time
	reveal  time.Duration
	records []tags.Record

	game     *game.Game
	groups   *selection.Set
	picker   *groupPicker
	pool     []tags.Record
	score    *tween.Counter
	frameGen uint64
	confirm  confirmDialog
	notice   string
	stats    ledger.Stats
}

type gameViewConfig struct {
	records        []tags.Record
	labels         []string
	excluded       []string
	revealInterval time.Duration
	scoreAnimation time.Duration
	gameOptions    []game.Option
	rounds         RoundLog
	logger         *zap.Logger
	now            func() time.Time
	keys           keyMap
}

func newGameView(cfg gameViewConfig) *gameView {
	groups := selection.New(cfg.labels, cfg.excluded...)
	v := &gameView{
		keys:    cfg.keys,
		logger:  cfg.logger,
		rounds:  cfg.rounds,
		now:     cfg.now,
		reveal:  cfg.revealInterval,
		records: cfg.records,
		game:    game.New(cfg.gameOptions...),
		groups:  groups,
		picker:  newGroupPicker(groups, styleChipRandom),
		score:   tween.NewCounter(cfg.scoreAnimation, 0),
		confirm: newConfirmDialog("Reset Score?",
			"Are you sure you want to reset your score to 0? This action cannot be undone."),
	}
	v.refreshPool()
	return v
}

func (v *gameView) refreshPool() {
	v.pool = game.Pool(v.records, v.groups)
	v.notice = ""
}

func (v *gameView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case revealMsg:
		v.game.Reveal(msg.round, msg.slot)
		return nil

	case scoreFrameMsg:
		if !v.score.Current(msg.gen) {
			return nil
		}
		if _, done := v.score.Step(v.now()); done {
			return nil
		}
		return scoreFrameCmd(msg.gen)

	case ledgerStatsMsg:
		if msg.err != nil {
			v.logger.Warn("Failed to refresh round ledger", zap.Error(msg.err))
			return nil
		}
		v.stats = msg.stats
		return nil

	case tea.KeyMsg:
		if v.confirm.IsOpen() {
			return v.updateDialog(msg)
		}
		return v.updateKeys(msg)
	}
	return nil
}

func (v *gameView) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Confirm):
		return v.resetScore()
	case key.Matches(msg, v.keys.Cancel):
		v.confirm.Close()
	}
	return nil
}

func (v *gameView) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Draw):
		return v.draw()
	case key.Matches(msg, v.keys.Pick):
		return v.pick(int(msg.Runes[0] - '1'))
	case key.Matches(msg, v.keys.Reset):
		v.confirm.Open()
	case key.Matches(msg, v.keys.NavLeft):
		v.picker.move(-1)
	case key.Matches(msg, v.keys.NavRight):
		v.picker.move(1)
	case key.Matches(msg, v.keys.ChipToggle):
		v.picker.toggle(0)
		v.refreshPool()
	case key.Matches(msg, v.keys.SelectAll):
		v.groups.SelectAll()
		v.refreshPool()
	case key.Matches(msg, v.keys.DeselectAll):
		v.groups.DeselectAll()
		v.refreshPool()
	}
	return nil
}

func (v *gameView) draw() tea.Cmd {
	round, err := v.game.Draw(v.pool)
	switch {
	case errors.Is(err, game.ErrPoolTooSmall):
		v.notice = notEnoughTagsNotice
		return nil
	case err != nil:
		return nil
	}
	v.notice = ""
	v.logger.Debug("Drew hand", zap.String("round", round.ID), zap.Int("pool", round.PoolSize))

	cmds := make([]tea.Cmd, 0, len(round.Hand)+1)
	for i := range round.Hand {
		cmds = append(cmds, revealCmd(round.ID, i, game.RevealDelay(i, v.reveal)))
	}
	if v.rounds != nil {
		if err := v.rounds.RecordDraw(context.Background(), round); err != nil {
			v.logger.Error("Error logging draw", zap.Error(err))
		}
		cmds = append(cmds, ledgerStatsCmd(v.rounds))
	}
	return tea.Batch(cmds...)
}

func (v *gameView) pick(slot int) tea.Cmd {
	roundID := v.game.RoundID()
	p, err := v.game.Select(slot)
	if err != nil {
		return nil
	}
	v.logger.Debug("Picked card", zap.String("round", roundID), zap.Int("slot", slot), zap.Int("delta", p.Delta))

	cmds := []tea.Cmd{v.animateScore()}
	if v.rounds != nil {
		if err := v.rounds.RecordSelection(context.Background(), roundID, p); err != nil {
			v.logger.Error("Error logging selection", zap.Error(err))
		}
		cmds = append(cmds, ledgerStatsCmd(v.rounds))
	}
	return tea.Batch(cmds...)
}

func (v *gameView) resetScore() tea.Cmd {
	before := v.game.Score()
	v.game.Reset()
	v.confirm.Close()
	v.notice = ""
	v.logger.Info("Score reset", zap.Int("score_before", before))

	cmds := []tea.Cmd{v.animateScore()}
	if v.rounds != nil {
		if err := v.rounds.RecordReset(context.Background(), before); err != nil {
			v.logger.Error("Error logging reset", zap.Error(err))
		}
		cmds = append(cmds, ledgerStatsCmd(v.rounds))
	}
	return tea.Batch(cmds...)
}

func (v *gameView) animateScore() tea.Cmd {
	v.frameGen = v.score.Retarget(v.game.Score(), v.now())
	if !v.score.Running() {
		return nil
	}
	return scoreFrameCmd(v.frameGen)
}

func revealCmd(round string, slot int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealMsg{round: round, slot: slot}
	})
}

func scoreFrameCmd(gen uint64) tea.Cmd {
	return tea.Tick(tween.FrameInterval, func(time.Time) tea.Msg {
		return scoreFrameMsg{gen: gen}
	})
}

func ledgerStatsCmd(rounds RoundLog) tea.Cmd {
	return func() tea.Msg {
		st, err := rounds.Stats(context.Background())
		return ledgerStatsMsg{stats: st, err: err}
	}
}

func (v *gameView) View(width int) string {
	var b strings.Builder

	scoreBox := styleScoreBox.Render(lipgloss.JoinVertical(lipgloss.Center,
		styleSubtle.Render("SCORE"),
		styleScore.Render(humanize.Comma(int64(v.score.Value()))),
		styleSubtle.Render("r: Reset Score"),
	))
	b.WriteString(scoreBox)
	b.WriteString("\n\n")

	if v.confirm.IsOpen() {
		b.WriteString(v.confirm.View())
		b.WriteString("\n\n")
	}

	state := v.game.State()
	if hand := v.game.Hand(); len(hand) > 0 {
		b.WriteString(renderHand(hand, v.game.Revealed(), state == game.StateDrawn, v.game.PickedSlot()))
		b.WriteString("\n\n")
	}

	if state != game.StateDrawn {
		label := "Draw Cards"
		if state == game.StateSelected {
			label = "Draw Again"
		}
		button := styleButton
		if len(v.pool) < game.HandSize {
			button = styleButtonNo
		}
		b.WriteString(button.Render(label))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString(styleNotice.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	panel := lipgloss.JoinVertical(lipgloss.Left,
		styleHeader.Render("Tag Group Pool")+styleSubtle.Render(fmt.Sprintf("   %s tags   ctrl+a: すべて選択 · ctrl+d: すべて解除", humanize.Comma(int64(len(v.pool))))),
		"",
		v.picker.view(width-4),
	)
	b.WriteString(stylePanel.Render(panel))
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render(v.statsLine()))
	return b.String()
}

func (v *gameView) statsLine() string {
	best := "-"
	if v.stats.BestRating > 0 {
		best = ratingBar(v.stats.BestRating)
	}
	return fmt.Sprintf("Rounds %d · Picks %d · Deletes %d · Best %s", v.stats.Draws, v.stats.Picks, v.stats.DeleteHits, best)
}

// ratingBar draws rating as five stars. Ratings past 5 fill the bar.
func ratingBar(rating int) string {
	filled := min(max(rating, 0), 5)
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}
